package deals

import (
	"context"

	"github.com/farellandr/dealhub/internal/models"
)

const (
	MetaSectionTitle  = "section_title"
	MetaInfoHeading   = "info_heading"
	MetaInfoHeadingTN = "info_heading_tn"
)

const (
	sectionTitleHTML = `<p style="text-align:center;"><span class="text-huge">Thanks for subscribing! Check out the deal details below!</span></p>`
	infoHeadingHTML  = `<p style="text-align:center;"><span class="text-huge">DEAL DETAILS</span></p>`
)

var metaFallbacks = map[string]string{
	MetaSectionTitle:  sectionTitleHTML,
	MetaInfoHeading:   infoHeadingHTML,
	MetaInfoHeadingTN: infoHeadingHTML,
}

// MetaByTitle returns the stored meta value, or the built-in default for the
// known titles when nothing non-empty is stored.
func (s *Service) MetaByTitle(ctx context.Context, deal *models.Deal, title string) (string, error) {
	meta, err := s.store.FindMeta(ctx, deal.ID, title)
	if err != nil {
		return "", s.fail(ErrStorage, "storage", "find meta", err)
	}
	if meta != nil && meta.Value != "" {
		return meta.Value, nil
	}
	return metaFallbacks[title], nil
}
