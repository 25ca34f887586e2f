package memory_test

import (
	"testing"

	"github.com/aretw0/chimara/pkg/adapters/memory"
	"github.com/aretw0/chimara/pkg/ports"
)

func TestMemorySettingsStore_Contract(t *testing.T) {
	ports.RunSettingsBackendContract(t, memory.NewSettingsStore())
}

func TestMemoryRecentStore_Contract(t *testing.T) {
	ports.RunRecentStoreContract(t, memory.NewRecentStore())
}
