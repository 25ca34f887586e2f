package chimara

// Version is the player version, overridden at build time with
// -ldflags "-X github.com/aretw0/chimara.Version=...".
var Version = "0.1.0"
