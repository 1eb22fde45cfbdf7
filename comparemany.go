package komparu

import (
	"context"

	"github.com/ashm-dev/komparu/internal/pool"
)

// CompareMany compares every pair among sources (all n*(n-1)/2
// combinations) and partitions them into equivalence classes under
// observed byte-equality. Pairwise comparisons run across the
// configured worker pool; the resulting Diff map lets callers inspect
// any individual pair's outcome even when AllEqual is false.
func CompareMany(ctx context.Context, sources []any, opts ...Option) (*CompareResult, error) {
	options, err := buildOptions(opts...)
	if err != nil {
		return nil, err
	}

	resolved := make([]Source, len(sources))
	for i, s := range sources {
		resolved[i] = asSource(s)
	}
	n := len(resolved)
	if n < 2 {
		return &CompareResult{AllEqual: true, Groups: singleGroupOf(resolved), Diff: map[[2]string]bool{}}, nil
	}

	pairs := make([][2]int, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pairs = append(pairs, [2]int{i, j})
		}
	}

	p := pool.New(options.MaxWorkers)
	equalAt := make([]bool, len(pairs))
	errs := p.RunCollectAll(len(pairs), func(k int) error {
		i, j := pairs[k][0], pairs[k][1]
		equal, err := compareSources(ctx, resolved[i], resolved[j], options)
		if err != nil {
			return err
		}
		equalAt[k] = equal
		return nil
	})
	for _, e := range errs {
		if e != nil {
			return nil, e
		}
	}

	uf := newUnionFind(n)
	diff := make(map[[2]string]bool, len(pairs))
	for k, pr := range pairs {
		i, j := pr[0], pr[1]
		diff[[2]string{resolved[i].name(), resolved[j].name()}] = equalAt[k]
		if equalAt[k] {
			uf.union(i, j)
		}
	}

	groupsByRoot := make(map[int]map[string]struct{})
	for i := range resolved {
		root := uf.find(i)
		if groupsByRoot[root] == nil {
			groupsByRoot[root] = make(map[string]struct{})
		}
		groupsByRoot[root][resolved[i].name()] = struct{}{}
	}
	groups := make([]map[string]struct{}, 0, len(groupsByRoot))
	for _, g := range groupsByRoot {
		groups = append(groups, g)
	}

	return &CompareResult{AllEqual: len(groups) <= 1, Groups: groups, Diff: diff}, nil
}

func singleGroupOf(sources []Source) []map[string]struct{} {
	group := make(map[string]struct{}, len(sources))
	for _, s := range sources {
		group[s.name()] = struct{}{}
	}
	return []map[string]struct{}{group}
}
