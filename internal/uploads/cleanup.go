package uploads

import (
	"context"
	"fmt"

	"github.com/JaimeStill/portfolio-admin/pkg/content"
)

// DeleteResult is the outcome of a successful delete. Warnings lists owned
// objects that could not be removed from storage.
type DeleteResult struct {
	Warnings []string `json:"warnings,omitempty"`
}

// Cleanup removes the stored objects referenced by tree and addresses.
// Callers pass only objects their record owns (see Claim). Addresses outside
// the reconciler's bucket are ignored. Failures never
// propagate; each one is logged and returned as a warning.
func (r *Reconciler) Cleanup(ctx context.Context, tree *content.Node, addresses ...string) []string {
	var paths []string
	seen := make(map[string]bool)

	for _, address := range append(content.Sources(tree), addresses...) {
		if address == "" {
			continue
		}
		p, ok := r.store.Path(r.bucket, address)
		if !ok || seen[p] {
			continue
		}
		seen[p] = true
		paths = append(paths, p)
	}

	if len(paths) == 0 {
		return nil
	}

	if err := r.store.Delete(ctx, r.bucket, paths...); err != nil {
		r.logger.Warn("storage cleanup failed", "objects", len(paths), "error", err)
		return []string{fmt.Sprintf("could not remove %d stored object(s): %v", len(paths), err)}
	}

	r.logger.Info("stored objects removed", "objects", len(paths))
	return nil
}

// Orphans returns the addresses in before that after no longer references.
func Orphans(before, after []string) []string {
	keep := make(map[string]bool, len(after))
	for _, a := range after {
		keep[a] = true
	}

	var out []string
	for _, b := range before {
		if b != "" && !keep[b] {
			out = append(out, b)
		}
	}
	return out
}

// Uploaded returns the image sources of after that before did not carry: the
// objects a reconciliation pass stored for the tree.
func Uploaded(before, after *content.Node) []string {
	return Orphans(content.Sources(after), content.Sources(before))
}

// Claim settles the stored objects a record owns after a save. It keeps the
// owned objects the record still references and adds the ones the save
// uploaded. Owned objects the record no longer references are released for
// cleanup. Addresses the record only references, such as an image copied from
// another record, are never claimed.
func Claim(owned, uploaded, referenced []string) (keep, released []string) {
	refs := make(map[string]bool, len(referenced))
	for _, a := range referenced {
		refs[a] = true
	}

	seen := make(map[string]bool, len(owned)+len(uploaded))
	for _, a := range owned {
		if a == "" || seen[a] {
			continue
		}
		seen[a] = true
		if refs[a] {
			keep = append(keep, a)
		} else {
			released = append(released, a)
		}
	}

	for _, a := range uploaded {
		if a == "" || seen[a] || !refs[a] {
			continue
		}
		seen[a] = true
		keep = append(keep, a)
	}

	return keep, released
}
