package usecase

import (
	"strings"

	"attendance-ingest/internal/domain"
)

// CodeHint is a distinct employee code found in a parse result, with the
// first name printed next to it, if any.
type CodeHint struct {
	Code string
	Name string
}

// CodeHints returns the distinct employee codes of punches in first-seen order.
func CodeHints(punches []domain.ParsedPunch) []CodeHint {
	index := make(map[string]int)
	var hints []CodeHint
	for _, p := range punches {
		i, ok := index[p.EmployeeCode]
		if !ok {
			index[p.EmployeeCode] = len(hints)
			hints = append(hints, CodeHint{Code: p.EmployeeCode, Name: p.Name})
			continue
		}
		if hints[i].Name == "" {
			hints[i].Name = p.Name
		}
	}
	return hints
}

// keyIndex maps a lookup key to the distinct profile ids sharing it.
type keyIndex map[string][]string

func (ix keyIndex) add(key, profileID string) {
	if key == "" || profileID == "" {
		return
	}
	for _, id := range ix[key] {
		if id == profileID {
			return
		}
	}
	ix[key] = append(ix[key], profileID)
}

// unique returns the profile id for key when exactly one profile has it.
func (ix keyIndex) unique(key string) (string, bool) {
	ids := ix[key]
	if len(ids) != 1 {
		return "", false
	}
	return ids[0], true
}

// LookupTables are the three sources codes are resolved against, built once
// per ingestion call.
type LookupTables struct {
	byCode        keyIndex
	byName        keyIndex
	byEmailPrefix keyIndex
}

// NewLookupTables indexes identifiers by code and profiles by display name and
// email local part.
func NewLookupTables(identifiers []domain.EmployeeIdentifier, profiles []domain.Profile) LookupTables {
	tables := LookupTables{
		byCode:        make(keyIndex),
		byName:        make(keyIndex),
		byEmailPrefix: make(keyIndex),
	}
	for _, ident := range identifiers {
		tables.byCode.add(strings.TrimSpace(ident.EmployeeCode), ident.ProfileID)
	}
	for _, p := range profiles {
		tables.byName.add(nameKey(p.DisplayName), p.ID)
		tables.byEmailPrefix.add(emailPrefixKey(p.Email), p.ID)
	}
	return tables
}

func nameKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

func emailPrefixKey(email string) string {
	local, _, found := strings.Cut(strings.TrimSpace(email), "@")
	if !found {
		return ""
	}
	return strings.ToLower(local)
}

// ResolveIdentities resolves each hint, in order, against the identifier
// table, then the profile display names, then the profile email prefixes.
// The first tier with exactly one candidate wins; a key shared by several
// profiles never resolves.
func ResolveIdentities(hints []CodeHint, tables LookupTables) []domain.Resolution {
	resolutions := make([]domain.Resolution, 0, len(hints))
	for _, h := range hints {
		resolutions = append(resolutions, resolve(h, tables))
	}
	return resolutions
}

func resolve(h CodeHint, tables LookupTables) domain.Resolution {
	res := domain.Resolution{EmployeeCode: h.Code}
	if id, ok := tables.byCode.unique(strings.TrimSpace(h.Code)); ok {
		res.ProfileID, res.Method = id, domain.ResolveByIdentifier
		return res
	}
	if h.Name != "" {
		if id, ok := tables.byName.unique(nameKey(h.Name)); ok {
			res.ProfileID, res.Method = id, domain.ResolveByName
			return res
		}
	}
	if id, ok := tables.byEmailPrefix.unique(strings.ToLower(strings.TrimSpace(h.Code))); ok {
		res.ProfileID, res.Method = id, domain.ResolveByEmailPrefix
	}
	return res
}
