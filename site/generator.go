// Package site assembles the static documentation site from a loaded book.
package site

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"pdc/assets"
	"pdc/book"
	"pdc/config"
	"pdc/lang"
	"pdc/misc"
	"pdc/render"
	"pdc/state"
	"pdc/utils/debug"
)

type Generator struct {
	cfg      *config.Config
	i18n     *lang.I18n
	textures *assets.Index
	renderer *render.Renderer
	log      *zap.Logger

	buildID      string
	generatorTag string
}

// generate runs the whole pipeline: load, render, write.
func generate(ctx context.Context, dst string, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)
	cfg := env.Cfg

	id, err := book.ParseResourceLocation(cfg.Book.ID)
	if err != nil {
		return fmt.Errorf("bad book id in configuration: %w", err)
	}

	i18n, err := lang.Load(cfg.Book.ResourceDirs, cfg.Book.Lang, cfg.Book.DefaultLang, cfg.Book.AllowMissing, log)
	if err != nil {
		return fmt.Errorf("unable to prepare localization: %w", err)
	}

	b, err := book.NewLoader(cfg.Book.ResourceDirs, i18n.Lang(), i18n, log).Load(id)
	if err != nil {
		return fmt.Errorf("unable to load book: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Store loaded structure for debugging
	if env.Rpt != nil {
		env.Rpt.StoreData("book-tree.txt", []byte(debug.DumpBook(b)))
	}

	textures, err := assets.Scan(cfg.Book.ResourceDirs, &cfg.Site.Textures, env.MissingTexture, log)
	if err != nil {
		return fmt.Errorf("unable to index textures: %w", err)
	}

	renderer, err := render.New(i18n, textures, nil, log)
	if err != nil {
		return err
	}

	buildID := cfg.Site.BuildID
	if buildID == "" {
		buildID = uuid.Must(uuid.NewV7()).String()
	}

	g := &Generator{
		cfg:          cfg,
		i18n:         i18n,
		textures:     textures,
		renderer:     renderer,
		log:          log,
		buildID:      buildID,
		generatorTag: misc.GetAppName() + " " + misc.GetVersion(),
	}
	return g.write(ctx, b, dst, env)
}

// write materializes the site tree and packages it per the requested layout.
func (g *Generator) write(ctx context.Context, b *book.Book, dst string, env *state.LocalEnv) error {
	zipped := env.Layout == config.OutputLayoutZip
	if zipped {
		dst += env.Layout.Ext()
	}
	if err := checkDestination(dst, zipped, env.Overwrite); err != nil {
		return err
	}

	staging := dst
	if zipped {
		tmp, err := os.MkdirTemp("", misc.GetAppName()+"-site-")
		if err != nil {
			return err
		}
		defer os.RemoveAll(tmp)
		staging = tmp
	}

	title, err := g.pageTitle(b)
	if err != nil {
		return err
	}
	doc, err := g.buildIndexDocument(b, title)
	if err != nil {
		return err
	}
	doc.Indent(2)
	page, err := doc.WriteToBytes()
	if err != nil {
		return err
	}
	if err := writeSiteFile(staging, "index.html", page); err != nil {
		return fmt.Errorf("unable to write index page: %w", err)
	}

	// stylesheet lives one level down, relative references need adjusting
	sheet := rewriteStylesheet(env.DefaultStyle, "../", g.log)
	if err := writeSiteFile(staging, stylesheetURL, sheet); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}

	if err := g.textures.WriteTo(staging); err != nil {
		return err
	}

	if g.cfg.Site.SearchIndex {
		if err := writeSearchIndex(filepath.Join(staging, "search.db"), collectSearchRows(b)); err != nil {
			return err
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if zipped {
		if err := zipTree(staging, dst); err != nil {
			return fmt.Errorf("unable to write site archive: %w", err)
		}
	}

	if env.Rpt != nil {
		env.Rpt.StoreData("result-index.html", page)
	}
	g.log.Info("Site written", zap.String("destination", dst), zap.String("build_id", g.buildID))
	return nil
}

func (g *Generator) pageTitle(b *book.Book) (string, error) {
	siteTitle := g.cfg.Site.Title
	if siteTitle == "" {
		siteTitle = b.Name
	}
	return expandTemplate(config.PageTitleTemplateFieldName, g.cfg.Site.TitleTemplate, Values{
		BookTitle: b.Name,
		PageTitle: siteTitle,
		SiteTitle: siteTitle,
		Language:  g.i18n.Lang(),
		BuildID:   g.buildID,
	})
}
