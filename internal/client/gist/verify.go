package gist

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/iudanet/novelsync/internal/chunk"
	"github.com/iudanet/novelsync/internal/naming"
	"github.com/iudanet/novelsync/pkg/api"
)

// DefaultTolerance is the accepted relative size difference of a written file.
const DefaultTolerance = 0.05

// Expectation is what the remote must look like after a write.
type Expectation struct {
	// Files maps file name to the expected size in bytes.
	Files map[string]int
	// Chunked maps entity id to the number of chunks written.
	Chunked map[string]int
	// Absent lists files that were deleted and must be gone.
	Absent []string
	// Tolerance is the accepted relative size difference; DefaultTolerance if zero.
	Tolerance float64
}

// Verify re-fetches the gist and checks it against exp.
func (c *Client) Verify(ctx context.Context, id string, exp Expectation) error {
	g, err := c.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("verify: %w", err)
	}
	if problems := c.check(ctx, g, exp); len(problems) > 0 {
		return &VerificationError{Problems: problems}
	}
	c.logger.Debug("write verified", "gist_id", id, "files", len(exp.Files))
	return nil
}

func (c *Client) check(ctx context.Context, g *api.Gist, exp Expectation) []string {
	tol := exp.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}

	var problems []string

	names := make([]string, 0, len(exp.Files))
	for name := range exp.Files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		want := exp.Files[name]
		f, ok := g.Files[name]
		if !ok || f == nil {
			problems = append(problems, fmt.Sprintf("%s is missing", name))
			continue
		}
		allowed := int(math.Ceil(float64(want) * tol))
		if diff := f.Size - want; diff > allowed || -diff > allowed {
			problems = append(problems, fmt.Sprintf("%s has size %d, expected %d", name, f.Size, want))
		}
	}

	ids := make([]string, 0, len(exp.Chunked))
	for id := range exp.Chunked {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		count := exp.Chunked[id]
		for i := 0; i < count; i++ {
			if _, ok := g.Files[naming.ChunkFile(id, i)]; !ok {
				problems = append(problems, fmt.Sprintf("chunk %d of %s is missing", i, id))
			}
		}

		metaName := naming.MetadataFile(id)
		metaFile, ok := g.Files[metaName]
		if !ok {
			problems = append(problems, fmt.Sprintf("%s is missing", metaName))
			continue
		}
		content, err := c.ResolveContent(ctx, metaFile)
		if err != nil {
			problems = append(problems, fmt.Sprintf("%s is unreadable: %v", metaName, err))
			continue
		}
		var meta chunk.Metadata
		if err := json.Unmarshal([]byte(content), &meta); err != nil {
			problems = append(problems, fmt.Sprintf("%s is not valid metadata: %v", metaName, err))
			continue
		}
		if meta.Chunks != count {
			problems = append(problems, fmt.Sprintf("%s declares %d chunks, expected %d", metaName, meta.Chunks, count))
		}
	}

	for _, name := range exp.Absent {
		if _, ok := g.Files[name]; ok {
			problems = append(problems, fmt.Sprintf("%s should have been deleted", name))
		}
	}

	return problems
}
