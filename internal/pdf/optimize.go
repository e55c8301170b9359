package pdf

import (
	"bytes"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Optimizer post-processes exported PDF bytes. Chromium renders every page
// independently and embeds shared assets (backgrounds, rasterized SVGs) once
// per page, so a full-year planner carries hundreds of redundant objects a
// structural rewrite can drop.
type Optimizer interface {
	Optimize(pdf []byte) ([]byte, error)
}

// PDFCPUOptimizer rewrites the document with pdfcpu's optimization pass,
// deduplicating resources and repacking the object streams.
type PDFCPUOptimizer struct{}

// Optimize returns an optimized copy of pdf.
func (PDFCPUOptimizer) Optimize(pdf []byte) ([]byte, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	var out bytes.Buffer
	if err := api.Optimize(bytes.NewReader(pdf), &out, conf); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
