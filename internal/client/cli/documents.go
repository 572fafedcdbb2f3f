package cli

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/chrisdutt24/lifeadmin/internal/client/models"
	"github.com/chrisdutt24/lifeadmin/internal/common"
	"github.com/chrisdutt24/lifeadmin/internal/filex"
	"github.com/chrisdutt24/lifeadmin/internal/netx"
	"github.com/chrisdutt24/lifeadmin/internal/presign"
)

// maxAttachSize bounds files embedded into the store as data URIs.
const maxAttachSize = 10 << 20

func isDataURI(s string) bool {
	return strings.HasPrefix(strings.TrimSpace(s), "data:")
}

func isLink(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// findDocument accepts a full id or an unambiguous id prefix.
func (a *App) findDocument(ctx context.Context, ref string) (models.Document, error) {
	d, err := a.ws.Documents.Get(ctx, ref)
	if err == nil || !errors.Is(err, common.ErrNotFound) {
		return d, err
	}

	all, err := a.ws.Documents.List(ctx, 0)
	if err != nil {
		return models.Document{}, err
	}
	var match []models.Document
	for _, d := range all {
		if strings.HasPrefix(d.ID, ref) {
			match = append(match, d)
		}
	}
	switch len(match) {
	case 1:
		return match[0], nil
	case 0:
		return models.Document{}, fmt.Errorf("document %q: %w", ref, common.ErrNotFound)
	default:
		return models.Document{}, fmt.Errorf("document id %q is ambiguous", ref)
	}
}

// Docs lists all documents newest first, or those of one entry.
func (a *App) Docs(ctx context.Context, args []string) error {
	var (
		docs []models.Document
		err  error
	)
	if len(args) > 0 {
		e, ferr := a.findEntry(ctx, args[0])
		if ferr != nil {
			return ferr
		}
		docs, err = a.ws.Documents.ListByEntry(ctx, e.ID)
	} else {
		docs, err = a.ws.Documents.List(ctx, 0)
	}
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		a.println("No documents.")
		return nil
	}

	dt := a.settings.DateTime(ctx)
	for _, d := range docs {
		a.println(documentLine(d, dt))
	}
	return nil
}

// fileInputFor builds the upload for src: links and s3:// references are
// stored as they are, local files are embedded as data URIs.
func fileInputFor(src string) (models.FileInput, error) {
	if isLink(src) || presign.IsS3Ref(src) {
		name := path.Base(strings.SplitN(src, "?", 2)[0])
		return models.FileInput{Name: name, DataURL: src, MimeType: mime.TypeByExtension(path.Ext(name))}, nil
	}

	info, err := os.Stat(src)
	if err != nil {
		return models.FileInput{}, err
	}
	if info.IsDir() {
		return models.FileInput{}, fmt.Errorf("%s is a directory: %w", src, common.ErrValidation)
	}
	if info.Size() > maxAttachSize {
		return models.FileInput{}, fmt.Errorf("%s is larger than %d bytes: %w", src, maxAttachSize, common.ErrValidation)
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return models.FileInput{}, err
	}

	mt := mime.TypeByExtension(filepath.Ext(src))
	if mt == "" {
		mt = http.DetectContentType(data)
	}
	return models.FileInput{
		Name:     filepath.Base(src),
		DataURL:  models.EncodeDataURI(mt, data),
		MimeType: mt,
	}, nil
}

func (a *App) Attach(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: attach <entry id> <file|url>")
	}
	e, err := a.findEntry(ctx, args[0])
	if err != nil {
		return err
	}

	in, err := fileInputFor(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	d, err := a.ws.Documents.Create(ctx, e.ID, in)
	if err != nil {
		return err
	}
	a.printf("Attached %s to %s (%s)\n", d.Filename, e.Title, shortID(d.ID))
	return nil
}

// Open saves embedded and s3:// documents into the download directory and
// prints links as they are.
func (a *App) Open(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: open <document id>")
	}
	d, err := a.findDocument(ctx, args[0])
	if err != nil {
		return err
	}

	ref := strings.TrimSpace(d.FileURL)
	var data []byte

	switch {
	case ref == "":
		a.println("This document has no file attached.")
		return nil

	case isDataURI(ref):
		uri, err := models.ParseDataURI(ref)
		if err != nil {
			return err
		}
		data = uri.Data

	case presign.IsS3Ref(ref):
		if a.resolver == nil {
			return fmt.Errorf("s3 storage is not configured")
		}
		url, err := a.resolver.Resolve(ctx, ref)
		if err != nil {
			return err
		}
		if data, err = netx.Download(ctx, a.httpClient, url); err != nil {
			return err
		}

	default:
		a.println(models.NormalizePortalURL(ref))
		return nil
	}

	dir, err := filex.EnsureSubdDir(a.config.DownloadDir)
	if err != nil {
		return err
	}
	out, err := filex.WriteUnique(dir, d.Filename, data)
	if err != nil {
		return err
	}
	a.log.Info(ctx, "document saved", "document_id", d.ID, "path", out)
	a.printf("Saved to %s\n", out)
	return nil
}

func (a *App) RemoveDocument(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: rmdoc <document id>")
	}
	d, err := a.findDocument(ctx, args[0])
	if err != nil {
		return err
	}
	if err := a.ws.Documents.Delete(ctx, d.ID); err != nil {
		return err
	}
	a.printf("Deleted %s\n", d.Filename)
	return nil
}
