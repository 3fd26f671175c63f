package domain

import (
	"encoding/json"
	"sort"
)

// CuratedRepo is one hand-picked repository pinned at a commit.
// Keys other than the known ones are kept and written back unchanged.
type CuratedRepo struct {
	// Repo is owner/name.
	Repo string `json:"repo" validate:"required,contains=/"`

	// CommitSHA may be abbreviated to its first seven or more digits.
	CommitSHA string `json:"commit_sha" validate:"required,hexadecimal,min=7,max=40"`

	// EntrypointPath restricts extraction to paths with this prefix.
	EntrypointPath string `json:"entrypoint_path"`

	// Content maps repository-relative path to file text. A non-nil empty
	// map marks an entry that was cloned but had no matching files.
	Content map[string]string `json:"content,omitempty"`

	extra map[string]json.RawMessage
}

var curatedKeys = []string{"repo", "commit_sha", "entrypoint_path", "content"}

// HasContent reports whether the entry was already populated.
func (r CuratedRepo) HasContent() bool {
	return len(r.Content) > 0
}

// CloneURL returns the HTTPS clone URL on GitHub.
func (r CuratedRepo) CloneURL() string {
	return "https://github.com/" + r.Repo + ".git"
}

// TreeURL returns the browsable URL of the pinned commit.
func (r CuratedRepo) TreeURL() string {
	return "https://github.com/" + r.Repo + "/tree/" + r.CommitSHA
}

// UnmarshalJSON decodes the known fields and retains the rest.
func (r *CuratedRepo) UnmarshalJSON(data []byte) error {
	type plain CuratedRepo
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range curatedKeys {
		delete(raw, k)
	}

	*r = CuratedRepo(p)
	r.extra = nil
	if len(raw) > 0 {
		r.extra = raw
	}
	return nil
}

// MarshalJSON encodes the known fields together with any retained keys.
func (r CuratedRepo) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.extra)+len(curatedKeys))
	for k, v := range r.extra {
		out[k] = v
	}
	out["repo"] = r.Repo
	out["commit_sha"] = r.CommitSHA
	out["entrypoint_path"] = r.EntrypointPath
	if r.Content != nil {
		out["content"] = r.Content
	}
	return json.Marshal(out)
}

// CuratedList groups curated repositories by language.
type CuratedList map[string][]CuratedRepo

// Languages returns the list's languages in sorted order.
func (l CuratedList) Languages() []string {
	langs := make([]string, 0, len(l))
	for lang := range l {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	return langs
}

// Pending counts entries that still need content.
func (l CuratedList) Pending() int {
	n := 0
	for _, repos := range l {
		for _, r := range repos {
			if !r.HasContent() {
				n++
			}
		}
	}
	return n
}
