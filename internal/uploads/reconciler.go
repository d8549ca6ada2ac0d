package uploads

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/portfolio-admin/pkg/content"
	"github.com/JaimeStill/portfolio-admin/pkg/storage"
)

// Reconciler resolves the pending images of document trees against one bucket.
type Reconciler struct {
	store  storage.System
	bucket string
	logger *slog.Logger
}

// NewReconciler creates a Reconciler that uploads into bucket.
func NewReconciler(store storage.System, bucket string, logger *slog.Logger) *Reconciler {
	return &Reconciler{
		store:  store,
		bucket: bucket,
		logger: logger.With("system", "reconciler", "bucket", bucket),
	}
}

// Reconcile returns a tree in which every image bound to a file in images
// points at the uploaded object instead of its placeholder.
//
// Images are uploaded one at a time in document order. The first failure ends
// the pass with an *UploadError and no tree. A placeholder bound to a file
// that is not an image fails with ErrInvalidFile. The input is never modified:
// changed nodes and their ancestors are copied, untouched subtrees are shared.
// A nil tree or an empty source returns tree without any I/O.
func (r *Reconciler) Reconcile(ctx context.Context, tree *content.Node, images Source, hint string) (*content.Node, error) {
	if tree == nil || images == nil || images.Len() == 0 {
		return tree, nil
	}

	p := pass{Reconciler: r, images: images, hint: hint}
	out, err := p.patch(ctx, tree)
	if err != nil {
		return nil, err
	}

	if p.uploaded > 0 {
		r.logger.Info("document images reconciled", "hint", hint, "uploaded", p.uploaded)
	}
	return out, nil
}

type pass struct {
	*Reconciler
	images   Source
	hint     string
	position int
	uploaded int
}

func (p *pass) patch(ctx context.Context, n *content.Node) (*content.Node, error) {
	if n == nil {
		return nil, nil
	}

	out := n

	if n.Kind == content.KindImage {
		p.position++
		resolved, err := p.resolve(ctx, n)
		if err != nil {
			return nil, err
		}
		out = resolved
	}

	var children []*content.Node
	for i, child := range n.Content {
		patched, err := p.patch(ctx, child)
		if err != nil {
			return nil, err
		}
		if patched == child && children == nil {
			continue
		}
		if children == nil {
			children = make([]*content.Node, len(n.Content))
			copy(children, n.Content)
		}
		children[i] = patched
	}

	if children != nil {
		if out == n {
			out = n.Clone()
		}
		out.Content = children
	}

	return out, nil
}

func (p *pass) resolve(ctx context.Context, n *content.Node) (*content.Node, error) {
	id, ok := n.Placeholder()
	if !ok {
		return n, nil
	}

	file, ok := p.images.Lookup(id)
	if !ok {
		return n, nil
	}

	name := ObjectName(p.hint, id, file.Name)
	fail := func(err error) error {
		return &UploadError{Placeholder: id, Position: p.position, Name: name, Err: err}
	}

	if !IsImage(file.ContentType) {
		return nil, fail(fmt.Errorf("%w: %s is not an image", ErrInvalidFile, file.ContentType))
	}

	if err := ctx.Err(); err != nil {
		return nil, fail(err)
	}

	stored, err := p.store.Upload(ctx, p.bucket, name, file.Data, storage.UploadOptions{
		ContentType: file.ContentType,
		Overwrite:   true,
	})
	if err != nil {
		p.logger.Error("image upload failed", "placeholder", id, "object", name, "error", err)
		return nil, fail(err)
	}

	p.uploaded++
	return n.Resolve(p.store.PublicURL(p.bucket, stored)), nil
}
