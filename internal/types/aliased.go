package types

// AliasedType is a ResolvedType still carrying named aliases, as produced
// by the parser before the resolver substitutes them away.
type AliasedType struct {
	resolved *ResolvedType // nil if this node is an unresolved alias reference
	alias    string
}

func FromResolved(t ResolvedType) AliasedType {
	return AliasedType{resolved: &t}
}

func AliasRef(name string) AliasedType {
	return AliasedType{alias: name}
}

// IsAlias reports whether this node still needs alias resolution.
func (a AliasedType) IsAlias() bool { return a.resolved == nil }

// AliasName returns the alias name; valid only if IsAlias().
func (a AliasedType) AliasName() string { return a.alias }

// Resolved returns the already-resolved type; valid only if !IsAlias().
func (a AliasedType) Resolved() ResolvedType { return *a.resolved }

// AliasTable maps alias names to their resolved type.
type AliasTable struct {
	byName map[string]ResolvedType
}

func NewAliasTable() *AliasTable {
	return &AliasTable{byName: make(map[string]ResolvedType)}
}

// Insert resolves aliasedTy (recursively substituting any alias references
// it contains) and records name -> resolved type. It returns an error via
// the ok flag if aliasedTy references an undefined alias.
func (t *AliasTable) Insert(name string, aliasedTy AliasedType) (ResolvedType, bool) {
	resolved, ok := t.Resolve(aliasedTy)
	if !ok {
		return ResolvedType{}, false
	}
	t.byName[name] = resolved
	return resolved, true
}

// Resolve recursively substitutes alias references for their resolved
// type. An AliasedType built purely from AliasedType constructors (not
// AliasRef) never looks anything up, since it is already a fully resolved
// shape by construction in this Go rendition; the lookup path exists for
// bare `type X = Y;` alias-of-alias chains.
func (t *AliasTable) Resolve(aliasedTy AliasedType) (ResolvedType, bool) {
	if !aliasedTy.IsAlias() {
		return aliasedTy.Resolved(), true
	}
	resolved, ok := t.byName[aliasedTy.AliasName()]
	return resolved, ok
}

// Lookup resolves a bare alias name.
func (t *AliasTable) Lookup(name string) (ResolvedType, bool) {
	resolved, ok := t.byName[name]
	return resolved, ok
}
