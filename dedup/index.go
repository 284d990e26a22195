package dedup

import (
	"context"
	"path/filepath"
	"sort"
	"sync"

	"github.com/ccollins476ad/imagefetch/fileutil"
	"golang.org/x/sync/errgroup"
)

// Index is a Detector that hashes the save directory once and then tracks
// saves in memory. Matches are the same as Scanner's as long as no other
// process writes to the directory during the session.
type Index struct {
	mtx    sync.Mutex        // Protects the fields below.
	byName map[string]string // filename -> hash
	byHash map[string]string // hash -> first filename, by name order
}

// BuildIndex hashes every regular file directly inside dir, using up to jobs
// goroutines.
func BuildIndex(ctx context.Context, dir string, jobs int) (*Index, error) {
	names, err := fileutil.RegularFiles(dir)
	if err != nil {
		return nil, err
	}

	if jobs < 1 {
		jobs = 1
	}

	hashes := make([]string, len(names))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			h, err := HashFile(filepath.Join(dir, name))
			if err != nil {
				return err
			}
			hashes[i] = h
			return nil
		})
	}

	err = g.Wait()
	if err != nil {
		return nil, err
	}

	idx := &Index{
		byName: make(map[string]string, len(names)),
		byHash: make(map[string]string, len(names)),
	}
	for i, name := range names {
		idx.byName[name] = hashes[i]
		if _, ok := idx.byHash[hashes[i]]; !ok {
			idx.byHash[hashes[i]] = name
		}
	}

	return idx, nil
}

// Len returns the number of indexed files.
func (idx *Index) Len() int {
	idx.mtx.Lock()
	defer idx.mtx.Unlock()

	return len(idx.byName)
}

// Match implements Detector#Match.
func (idx *Index) Match(ctx context.Context, b []byte) (string, error) {
	h := Hash(b)

	idx.mtx.Lock()
	defer idx.mtx.Unlock()

	return idx.byHash[h], nil
}

// Record implements Detector#Record. Saving over an existing filename
// replaces that file's old hash.
func (idx *Index) Record(filename string, b []byte) {
	h := Hash(b)

	idx.mtx.Lock()
	defer idx.mtx.Unlock()

	old, ok := idx.byName[filename]
	idx.byName[filename] = h
	if ok && old != h && idx.byHash[old] == filename {
		delete(idx.byHash, old)
		idx.reassign(old)
	}

	cur, ok := idx.byHash[h]
	if !ok || filename < cur {
		idx.byHash[h] = filename
	}
}

// reassign points hash h at the first remaining file, by name, that has it.
// Must be called with idx.mtx held.
func (idx *Index) reassign(h string) {
	var names []string
	for name, nh := range idx.byName {
		if nh == h {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return
	}

	sort.Strings(names)
	idx.byHash[h] = names[0]
}
