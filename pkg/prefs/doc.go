/*
Package prefs is the preferences store of the player.

The set of keys is fixed (see Specs). Each key belongs to a schema,
"preferences" for choices made by the user and "state" for values the player
remembers between runs, and has a kind and a documented default. Values are
loaded once when the store is opened and written back only through Set and
Unset.

Reading never fails: a key with no stored value, or with a value that no
longer parses, yields its default. Path keys have no static default and are
returned as domain.Optional so callers can compute one.
*/
package prefs
