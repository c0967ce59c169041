package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/keep/pkg/note"
)

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string

	// now is the store clock used to stamp created/updated; newID assigns
	// document ids. Both are swappable for tests.
	now   func() time.Time
	newID func() string
}

func (p *persistence) read(key string) (*note.Note, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	var doc document
	if err := json.Unmarshal(val, &doc); err != nil {
		return nil, err
	}
	pk := keyToPathTransform(key)
	if doc.Owner == "" {
		doc.Owner = fromOwner(pk.Path[0])
	}
	return doc.toNote(pk.FileName, p.now()), nil
}

func (p *persistence) Create(ctx context.Context, owner, title, content, color string) (*note.Note, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, errors.New("store: owner required")
	}
	if !note.ValidColor(color) {
		return nil, fmt.Errorf("store: color %q is not in the palette", color)
	}

	stamp := note.Timestamp{Time: p.now()}
	doc := document{
		Owner:   owner,
		Title:   title,
		Content: content,
		Color:   color,
		Created: stamp,
		Updated: stamp,
	}
	id := p.newID()
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if err := p.d.Write(toKey(owner, id), data); err != nil {
		return nil, fmt.Errorf("store: write: %w", err)
	}
	return doc.toNote(id, stamp.Time), nil
}

func (p *persistence) FetchAll(ctx context.Context, owner string) ([]*note.Note, error) {
	encoded := toOwner(owner)
	all := make([]*note.Note, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if pk := keyToPathTransform(key); pk.Path[0] != encoded {
			continue
		}
		n, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, n)
	}
	sortNotes(all)
	return all, nil
}

func (p *persistence) Get(ctx context.Context, id string) (*note.Note, error) {
	key, err := p.keyFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return p.read(key)
}

func (p *persistence) Update(ctx context.Context, id, title, content string) (*note.Note, error) {
	key, err := p.keyFor(ctx, id)
	if err != nil {
		return nil, err
	}
	current, err := p.read(key)
	if err != nil {
		return nil, fmt.Errorf("store: read %s: %w", id, err)
	}

	doc := toDocument(current)
	doc.Title = title
	doc.Content = content
	doc.Updated = note.Timestamp{Time: p.now()}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	if err := p.d.Write(key, data); err != nil {
		return nil, fmt.Errorf("store: write %s: %w", id, err)
	}
	return doc.toNote(id, doc.Updated.Time), nil
}

func (p *persistence) Delete(ctx context.Context, id string) error {
	key, err := p.keyFor(ctx, id)
	if err != nil {
		return err
	}
	if err := p.d.Erase(key); err != nil {
		return fmt.Errorf("store: erase %s: %w", id, err)
	}
	return nil
}

// keyFor resolves a bare document id to its full storage key.
func (p *persistence) keyFor(ctx context.Context, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrNotFound
	}
	for key := range p.d.Keys(ctx.Done()) {
		if keyToPathTransform(key).FileName == id {
			return key, nil
		}
	}
	return "", ErrNotFound
}

func sortNotes(notes []*note.Note) {
	sort.SliceStable(notes, func(i, j int) bool {
		left := notes[i]
		right := notes[j]
		if left == nil || right == nil {
			return left != nil
		}
		lt := left.Created.Time
		rt := right.Created.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			// Most recently created first.
			return lt.After(rt)
		}
	})
}

const keySeparator = "."

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.SplitN(s, keySeparator, 2)
	if len(parts) == 1 {
		return &diskv.PathKey{Path: []string{""}, FileName: parts[0]}
	}
	return &diskv.PathKey{
		Path:     []string{parts[0]},
		FileName: parts[1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s%s%s", strings.Join(pathKey.Path, keySeparator), keySeparator, pathKey.FileName)
}

// toKey makes `owner.id`. The owner segment is encoded so any identity
// value maps to a single filesystem-safe bucket directory.
func toKey(owner, id string) string {
	return fmt.Sprintf("%s%s%s", toOwner(owner), keySeparator, id)
}

func toOwner(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func fromOwner(s string) string {
	owner, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return fmt.Sprintf("fromOwner: %s", err)
	}
	return string(owner)
}
