package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/0nyxlabs/merchanding/cart"
)

// FilePersister keeps the serialized cart item table as a single JSON file
// under dir, one file per namespace key.
type FilePersister struct {
	path string
}

func NewFilePersister(dir string, namespace string) *FilePersister {
	name := strings.ReplaceAll(namespace, ":", "_") + ".json"
	return &FilePersister{path: filepath.Join(dir, name)}
}

func (p *FilePersister) Load(c context.Context) ([]cart.Item, error) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed reading cart file=%s with error=%w", p.path, err)
	}

	items := []cart.Item{}
	err = json.Unmarshal(data, &items)
	if err != nil {
		return nil, fmt.Errorf("failed unmarshaling cart file=%s with error=%w", p.path, err)
	}
	return items, nil
}

func (p *FilePersister) Save(c context.Context, items []cart.Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed marshaling cart with error=%w", err)
	}

	err = os.MkdirAll(filepath.Dir(p.path), 0o755)
	if err != nil {
		return fmt.Errorf("failed creating cart dir with error=%w", err)
	}

	// Write-then-rename so a crash mid-write never leaves a torn item table.
	tmp := p.path + ".tmp"
	err = os.WriteFile(tmp, data, 0o600)
	if err != nil {
		return fmt.Errorf("failed writing cart file=%s with error=%w", tmp, err)
	}
	err = os.Rename(tmp, p.path)
	if err != nil {
		return fmt.Errorf("failed renaming cart file=%s with error=%w", tmp, err)
	}
	return nil
}

func (p *FilePersister) Delete(c context.Context) error {
	err := os.Remove(p.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed removing cart file=%s with error=%w", p.path, err)
	}
	return nil
}
