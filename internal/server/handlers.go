package server

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/ironsheep/bannercopy/internal/copygen"
	"github.com/ironsheep/bannercopy/internal/imaging"
	"github.com/ironsheep/bannercopy/internal/pipeline"
	"github.com/ironsheep/bannercopy/internal/recognize"
	"github.com/ironsheep/bannercopy/internal/segment"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "banner_extract_text").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// errNoImage is returned when a tool needs an image and got neither a path
// nor inline data.
var errNoImage = errors.New("either path or image_base64 is required")

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}

	switch name {
	// Segmentation and OCR
	case "banner_segment_plan":
		return s.handleSegmentPlan(args)
	case "banner_extract_text":
		return s.handleExtractText(ctx, args)

	// Marketing
	case "banner_analyze":
		return s.handleAnalyze(ctx, args)
	case "banner_generate_copy":
		return s.handleGenerateCopy(ctx, args)

	// Reference
	case "banner_platforms":
		return s.handlePlatforms()
	case "banner_ocr_info":
		return s.handleOCRInfo()

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// imageArgs is embedded by every tool that accepts an image.
type imageArgs struct {
	Path        string `json:"path"`
	ImageBase64 string `json:"image_base64"`
}

func (a imageArgs) hasImage() bool {
	return a.Path != "" || a.ImageBase64 != ""
}

// load decodes the image named by a. Path wins when both are set.
func (a imageArgs) load() (*imaging.Upload, error) {
	if a.Path != "" {
		return imaging.LoadUpload(a.Path)
	}
	if a.ImageBase64 == "" {
		return nil, errNoImage
	}

	data := a.ImageBase64
	if strings.HasPrefix(data, "data:") {
		if i := strings.Index(data, ","); i >= 0 {
			data = data[i+1:]
		}
	}
	// Decoded size is at most 3/4 of the encoded length.
	if int64(len(data))/4*3 > imaging.MaxUploadBytes+3 {
		return nil, imaging.ErrTooLarge
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, fmt.Errorf("invalid image_base64: %w", err)
	}
	return imaging.DecodeUpload(bytes.NewReader(raw), int64(len(raw)))
}

// === Segmentation and OCR Handlers ===

type segmentPlanResult struct {
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Format      string           `json:"format"`
	AspectRatio float64          `json:"aspect_ratio"`
	StripCount  int              `json:"strip_count"`
	Strips      []segment.Bounds `json:"strips"`
}

func (s *Server) handleSegmentPlan(args json.RawMessage) (interface{}, error) {
	var a imageArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	upload, err := a.load()
	if err != nil {
		return nil, err
	}
	plan, err := segment.Plan(upload.Width, upload.Height)
	if err != nil {
		return nil, err
	}
	return segmentPlanResult{
		Width:       upload.Width,
		Height:      upload.Height,
		Format:      upload.Format,
		AspectRatio: upload.AspectRatio(),
		StripCount:  len(plan),
		Strips:      plan,
	}, nil
}

type extractTextArgs struct {
	imageArgs
	IncludeStrips bool `json:"include_strips"`
}

type stripText struct {
	ID     int    `json:"id"`
	Y      int    `json:"y"`
	Height int    `json:"height"`
	Text   string `json:"text"`
	Error  string `json:"error,omitempty"`
}

type extractTextResult struct {
	WorkflowID   string      `json:"workflow_id"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	StripCount   int         `json:"strip_count"`
	Text         string      `json:"text"`
	Extracted    bool        `json:"extracted"`
	FailedStrips []int       `json:"failed_strips,omitempty"`
	Strips       []stripText `json:"strips,omitempty"`
}

func (s *Server) handleExtractText(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a extractTextArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	wf, err := s.extract(ctx, a.imageArgs)
	if err != nil {
		return nil, err
	}

	res := extractTextResult{
		WorkflowID:   wf.ID,
		Width:        wf.Width,
		Height:       wf.Height,
		StripCount:   len(wf.Strips),
		Text:         wf.Combined,
		Extracted:    wf.Extracted(),
		FailedStrips: wf.FailedStrips(),
	}
	if a.IncludeStrips {
		for i, r := range wf.Results {
			st := stripText{ID: r.StripID, Y: r.Y, Height: wf.Strips[i].Height, Text: r.Text}
			if r.Err != nil {
				st.Error = r.Err.Error()
			}
			res.Strips = append(res.Strips, st)
		}
	}
	return res, nil
}

func (s *Server) extract(ctx context.Context, a imageArgs) (*recognize.Workflow, error) {
	upload, err := a.load()
	if err != nil {
		return nil, err
	}
	return s.svc.Extract(ctx, upload.Image, nil)
}

// textFor returns text when given, otherwise the text extracted from the
// image in a.
func (s *Server) textFor(ctx context.Context, text string, a imageArgs) (string, error) {
	if strings.TrimSpace(text) != "" {
		return text, nil
	}
	if !a.hasImage() {
		return "", errors.New("text, path or image_base64 is required")
	}
	wf, err := s.extract(ctx, a)
	if err != nil {
		return "", err
	}
	if !wf.Extracted() {
		return "", errors.New(recognize.NoTextSentinel)
	}
	return wf.Combined, nil
}

// === Marketing Handlers ===

type analyzeArgs struct {
	imageArgs
	Text string `json:"text"`
}

func (s *Server) handleAnalyze(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a analyzeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	text, err := s.textFor(ctx, a.Text, a.imageArgs)
	if err != nil {
		return nil, err
	}
	return s.svc.Analyze(ctx, text)
}

type generateCopyArgs struct {
	imageArgs
	Text         string   `json:"text"`
	Platforms    []string `json:"platforms"`
	Requirements string   `json:"requirements"`
	SkipAnalysis bool     `json:"skip_analysis"`
}

func (s *Server) handleGenerateCopy(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a generateCopyArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Platforms) == 0 {
		return nil, copygen.ErrNoPlatforms
	}
	// Reject bad platform keys before spending an OCR pass.
	if _, err := copygen.Resolve(a.Platforms); err != nil {
		return nil, err
	}
	text, err := s.textFor(ctx, a.Text, a.imageArgs)
	if err != nil {
		return nil, err
	}
	return s.svc.Generate(ctx, pipeline.GenerateRequest{
		Text:         text,
		Platforms:    a.Platforms,
		Requirements: a.Requirements,
		SkipAnalysis: a.SkipAnalysis,
	})
}

// === Reference Handlers ===

type platformsResult struct {
	Platforms  []copygen.Platform  `json:"platforms"`
	Variations []copygen.Variation `json:"variations"`
}

func (s *Server) handlePlatforms() (interface{}, error) {
	return platformsResult{
		Platforms:  copygen.Platforms(),
		Variations: copygen.Variations(),
	}, nil
}

func (s *Server) handleOCRInfo() (interface{}, error) {
	if s.engineInfo == nil {
		return nil, errors.New("OCR engine info not available")
	}
	return s.engineInfo(), nil
}
