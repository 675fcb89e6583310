package recognize

import (
	"context"
	"image"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/bannercopy/internal/segment"
)

// Workflow holds the state of one segment-and-recognize run. It is created
// by Run and owned by the caller; nothing in this package retains it.
type Workflow struct {
	ID       string          `json:"id"`
	Width    int             `json:"width"`
	Height   int             `json:"height"`
	Strips   []segment.Strip `json:"strips"`
	Results  []Result        `json:"results"`
	Combined string          `json:"combined_text"`
	Started  time.Time       `json:"started"`
	Finished time.Time       `json:"finished"`
}

// Extracted reports whether any strip produced text.
func (w *Workflow) Extracted() bool {
	return w.Combined != NoTextSentinel
}

// FailedStrips returns the IDs of strips whose OCR call failed.
func (w *Workflow) FailedStrips() []int {
	var ids []int
	for _, r := range w.Results {
		if r.Failed() {
			ids = append(ids, r.StripID)
		}
	}
	return ids
}

// Run segments img, recognizes every strip with engine and merges the text.
//
// The only error is segment.ErrInvalidGeometry (wrapped) for an image with no
// pixels; OCR failures degrade to empty strip text.
func Run(ctx context.Context, img image.Image, engine OCR, opts ...Option) (*Workflow, error) {
	wf := &Workflow{
		ID:      uuid.NewString(),
		Started: time.Now(),
	}

	strips, err := segment.Split(img)
	if err != nil {
		return nil, err
	}
	bounds := img.Bounds()
	wf.Width, wf.Height = bounds.Dx(), bounds.Dy()
	wf.Strips = strips

	log.Printf("recognize: workflow %s: %dx%d image cut into %d strip(s)", wf.ID, wf.Width, wf.Height, len(strips))

	wf.Results = Recognize(ctx, strips, engine, opts...)
	wf.Combined = Merge(wf.Results, opts...)
	wf.Finished = time.Now()

	if failed := wf.FailedStrips(); len(failed) > 0 {
		log.Printf("recognize: workflow %s: OCR failed for strip(s) %v", wf.ID, failed)
	}
	return wf, nil
}

// SegmentAndRecognize is Run reduced to the combined text.
func SegmentAndRecognize(ctx context.Context, img image.Image, engine OCR, opts ...Option) (string, error) {
	wf, err := Run(ctx, img, engine, opts...)
	if err != nil {
		return "", err
	}
	return wf.Combined, nil
}
