package bridge

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/scrape/document"
	"github.com/hazyhaar/scrape/idgen"
	"github.com/hazyhaar/scrape/kit"
)

// RegisterMCP registers the scrape tools on an MCP server.
func (r *Registry) RegisterMCP(srv *mcp.Server) {
	r.registerLoadTool(srv)
	r.registerRootTool(srv)
	r.registerQueryTool(srv)
	r.registerFreeTool(srv)
	r.registerStatsTool(srv)

	r.registerElementTool(srv, "scrape_name", "Tag name of an element.",
		func(el document.Element) (any, error) {
			name, err := el.Name()
			return map[string]any{"name": name}, err
		})
	r.registerElementTool(srv, "scrape_attributes", "Attributes of an element, in source order.",
		func(el document.Element) (any, error) {
			attrs, err := el.Attributes()
			return map[string]any{"attributes": attrs}, err
		})
	r.registerElementTool(srv, "scrape_html", "Markup of an element including its own tags.",
		func(el document.Element) (any, error) {
			s, err := el.HTML()
			return map[string]any{"html": s}, err
		})
	r.registerElementTool(srv, "scrape_inner_html", "Markup of an element's children.",
		func(el document.Element) (any, error) {
			s, err := el.InnerHTML()
			return map[string]any{"inner_html": s}, err
		})
	r.registerElementTool(srv, "scrape_text", "Every descendant text node of an element, in document order.",
		func(el document.Element) (any, error) {
			texts, err := el.Text()
			return map[string]any{"text": texts}, err
		})
	r.registerElementTool(srv, "scrape_markdown", "An element's subtree converted to Markdown.",
		func(el document.Element) (any, error) {
			s, err := el.Markdown()
			return map[string]any{"markdown": s}, err
		})
}

func inputSchema(properties map[string]any, required []string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": properties,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func (r *Registry) endpoint(name string, ep kit.Endpoint) kit.Endpoint {
	return kit.Chain(
		kit.RequestID(idgen.Prefixed("req_", idgen.NanoID(12))),
		kit.Logging(r.logger, name),
	)(ep)
}

func decodeInto[T any](req *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
	var v T
	if err := json.Unmarshal(req.Params.Arguments, &v); err != nil {
		return nil, err
	}
	return &kit.MCPDecodeResult{Request: &v}, nil
}

// --- load ---

type loadReq struct {
	Markup string `json:"markup"`
}

func (r *Registry) registerLoadTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "scrape_load",
		Description: "Parse an HTML string into a document. Returns a document id.",
		InputSchema: inputSchema(map[string]any{
			"markup": map[string]any{"type": "string", "description": "HTML markup"},
		}, []string{"markup"}),
	}

	ep := func(_ context.Context, req any) (any, error) {
		id, err := r.Load(req.(*loadReq).Markup)
		if err != nil {
			return nil, err
		}
		return map[string]any{"document": id}, nil
	}

	kit.RegisterMCPTool(srv, tool, r.endpoint(tool.Name, ep), decodeInto[loadReq])
}

// --- root ---

type rootReq struct {
	Document string `json:"document"`
}

func (r *Registry) registerRootTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "scrape_root",
		Description: "Handle to the root element of a document.",
		InputSchema: inputSchema(map[string]any{
			"document": map[string]any{"type": "string", "description": "Document id"},
		}, []string{"document"}),
	}

	ep := func(_ context.Context, req any) (any, error) {
		id, err := r.Root(req.(*rootReq).Document)
		if err != nil {
			return nil, err
		}
		return map[string]any{"element": id}, nil
	}

	kit.RegisterMCPTool(srv, tool, r.endpoint(tool.Name, ep), decodeInto[rootReq])
}

// --- query ---

type queryReq struct {
	Element  string `json:"element"`
	Selector string `json:"selector"`
}

func (r *Registry) registerQueryTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name: "scrape_query",
		Description: "Descendants of an element matching a CSS selector, in document order. " +
			"A malformed selector yields an empty list.",
		InputSchema: inputSchema(map[string]any{
			"element":  map[string]any{"type": "string", "description": "Element id"},
			"selector": map[string]any{"type": "string", "description": "CSS selector"},
		}, []string{"element", "selector"}),
	}

	ep := func(_ context.Context, req any) (any, error) {
		q := req.(*queryReq)
		ids, err := r.Query(q.Element, q.Selector)
		if err != nil {
			return nil, err
		}
		return map[string]any{"elements": ids, "length": len(ids)}, nil
	}

	kit.RegisterMCPTool(srv, tool, r.endpoint(tool.Name, ep), decodeInto[queryReq])
}

// --- free ---

type freeReq struct {
	ID string `json:"id"`
}

func (r *Registry) registerFreeTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name: "scrape_free",
		Description: "Release a document or element id. Element ids of a freed document " +
			"stay registered but report a dangling handle.",
		InputSchema: inputSchema(map[string]any{
			"id": map[string]any{"type": "string", "description": "Document or element id"},
		}, []string{"id"}),
	}

	ep := func(_ context.Context, req any) (any, error) {
		id := req.(*freeReq).ID
		if err := r.Free(id); err != nil {
			return nil, err
		}
		return map[string]any{"freed": id}, nil
	}

	kit.RegisterMCPTool(srv, tool, r.endpoint(tool.Name, ep), decodeInto[freeReq])
}

// --- stats ---

func (r *Registry) registerStatsTool(srv *mcp.Server) {
	tool := &mcp.Tool{
		Name:        "scrape_stats",
		Description: "Number of live documents and registered element ids.",
		InputSchema: inputSchema(map[string]any{}, nil),
	}

	ep := func(_ context.Context, _ any) (any, error) {
		return r.Stats(), nil
	}

	decode := func(_ *mcp.CallToolRequest) (*kit.MCPDecodeResult, error) {
		return &kit.MCPDecodeResult{Request: nil}, nil
	}

	kit.RegisterMCPTool(srv, tool, r.endpoint(tool.Name, ep), decode)
}

// --- element accessors ---

type elementReq struct {
	Element string `json:"element"`
}

var errMissingElement = errors.New("element is required")

func (r *Registry) registerElementTool(srv *mcp.Server, name, description string, read func(document.Element) (any, error)) {
	tool := &mcp.Tool{
		Name:        name,
		Description: description,
		InputSchema: inputSchema(map[string]any{
			"element": map[string]any{"type": "string", "description": "Element id"},
		}, []string{"element"}),
	}

	ep := func(_ context.Context, req any) (any, error) {
		id := req.(*elementReq).Element
		if id == "" {
			return nil, errMissingElement
		}
		el, err := r.Element(id)
		if err != nil {
			return nil, err
		}
		resp, err := read(el)
		if err != nil {
			return nil, err
		}
		return resp, nil
	}

	kit.RegisterMCPTool(srv, tool, r.endpoint(tool.Name, ep), decodeInto[elementReq])
}
