package semantics

import "fmt"

// DuplicateAliasError reports that two passes declared the same non-empty
// alias. The binder rejects this outright rather than silently letting the
// second declaration overwrite the first.
type DuplicateAliasError struct {
	Alias      string
	FirstPass  int
	SecondPass int
}

func (e *DuplicateAliasError) Error() string {
	return fmt.Sprintf("semantics: duplicate alias %q declared by pass %d and pass %d", e.Alias, e.FirstPass, e.SecondPass)
}
