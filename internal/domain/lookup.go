package domain

// LookupKind tags the outcome of a document-number lookup.
type LookupKind int

const (
	LookupNotFound LookupKind = iota
	LookupUnique
	LookupAmbiguous
)

// DocumentLookup is the result of resolving a human-facing document number
// that may be shared by records in different org units.
type DocumentLookup struct {
	Kind       LookupKind
	Record     *FiscalRecord
	Candidates []FiscalRecord
}

// ResolveDocumentLookup narrows matches using an optional org-unit hint.
func ResolveDocumentLookup(matches []FiscalRecord, hint *OrgUnit) DocumentLookup {
	switch len(matches) {
	case 0:
		return DocumentLookup{Kind: LookupNotFound}
	case 1:
		return DocumentLookup{Kind: LookupUnique, Record: &matches[0]}
	}

	if hint != nil {
		var narrowed []FiscalRecord
		for i := range matches {
			if matches[i].OrgUnit == *hint {
				narrowed = append(narrowed, matches[i])
			}
		}
		if len(narrowed) == 1 {
			return DocumentLookup{Kind: LookupUnique, Record: &narrowed[0]}
		}
	}
	return DocumentLookup{Kind: LookupAmbiguous, Candidates: matches}
}

// OrgUnits lists the distinct org units among the candidates, in first-seen order.
func (l DocumentLookup) OrgUnits() []OrgUnit {
	seen := make(map[OrgUnit]bool)
	var out []OrgUnit
	for i := range l.Candidates {
		u := l.Candidates[i].OrgUnit
		if !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	return out
}

// Err converts a non-unique outcome into the matching domain error.
func (l DocumentLookup) Err(documentNumber string, hint *OrgUnit) error {
	switch l.Kind {
	case LookupUnique:
		return nil
	case LookupNotFound:
		return &RecordNotFoundError{DocumentNumber: documentNumber}
	}
	return &AmbiguousDocumentNumberError{DocumentNumber: documentNumber, Hint: hint, OrgUnits: l.OrgUnits()}
}
