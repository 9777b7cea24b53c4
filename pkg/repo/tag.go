package repo

import (
	"fmt"
	"strings"
	"time"

	"github.com/witscm/wit/pkg/object"
)

// CreateTag creates a lightweight tag: a ref under refs/tags/ pointing
// directly at the object named by target.
func (r *Repo) CreateTag(name, target string) error {
	if err := validateTagName(name); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	h, err := r.Find(target, "")
	if err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	if err := r.CreateRef("refs/tags/"+name, h); err != nil {
		return fmt.Errorf("create tag: %w", err)
	}
	return nil
}

// CreateAnnotatedTag stores a tag object carrying tagger and message
// headers, then points refs/tags/<name> at it. It returns the tag object's
// hash.
func (r *Repo) CreateAnnotatedTag(name, target, tagger, message string) (object.Hash, error) {
	if err := validateTagName(name); err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	if strings.TrimSpace(tagger) == "" {
		tagger = "wit <wit@localhost>"
	}

	h, err := r.Find(target, "")
	if err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	targetObj, err := r.Store.Read(h)
	if err != nil {
		return "", fmt.Errorf("create annotated tag: read target: %w", err)
	}

	var doc object.Document
	doc.Add("object", string(h))
	doc.Add("type", string(targetObj.Type()))
	doc.Add("tag", name)
	doc.Add("tagger", fmt.Sprintf("%s %d %s", tagger, time.Now().Unix(), timezoneOffset(time.Now())))
	doc.Message = []byte(message + "\n")

	tagHash, err := r.Store.Write(&object.Tag{Doc: doc})
	if err != nil {
		return "", fmt.Errorf("create annotated tag: write tag object: %w", err)
	}
	if err := r.CreateRef("refs/tags/"+name, tagHash); err != nil {
		return "", fmt.Errorf("create annotated tag: %w", err)
	}
	return tagHash, nil
}

func validateTagName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("tag name is required")
	}
	if strings.ContainsAny(name, " \t\n") || strings.Contains(name, "..") || strings.HasPrefix(name, "/") {
		return fmt.Errorf("invalid tag name %q", name)
	}
	return nil
}

// timezoneOffset formats t's zone as ±HHMM.
func timezoneOffset(t time.Time) string {
	_, offset := t.Zone()
	sign := "+"
	if offset < 0 {
		sign = "-"
		offset = -offset
	}
	return fmt.Sprintf("%s%02d%02d", sign, offset/3600, offset%3600/60)
}
