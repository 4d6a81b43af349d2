package internal

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MCPServer exposes the App as MCP tools
type MCPServer struct {
	app       *App
	log       *Logger
	mcpServer *server.MCPServer
}

// NewMCPServer creates a new MCP server instance
func NewMCPServer(app *App, version string) *MCPServer {
	mcpServer := server.NewMCPServer(
		AppName+"-server",
		version,
		server.WithToolCapabilities(true),
	)

	s := &MCPServer{
		app:       app,
		log:       app.log,
		mcpServer: mcpServer,
	}
	s.registerTools()

	return s
}

func (s *MCPServer) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("get_youtube_metadata",
		mcp.WithDescription("Extract video metadata including the available caption languages. Check 'Has Captions' before asking for a transcript or study material."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or 11 character video ID"),
			mcp.Required(),
		),
	), s.handleGetMetadata)

	s.mcpServer.AddTool(mcp.NewTool("get_youtube_transcript",
		mcp.WithDescription("Get the existing YouTube captions of a video as plain text. Falls back to English captions when the requested language has none."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or 11 character video ID"),
			mcp.Required(),
		),
		mcp.WithString("language",
			mcp.Description("Caption language: es or en. Defaults to the configured language."),
			mcp.Enum(string(LanguageSpanish), string(LanguageEnglish)),
		),
	), s.handleGetTranscript)

	s.mcpServer.AddTool(mcp.NewTool("generate_study_material",
		mcp.WithDescription("Generate study material from the captions of a YouTube video: a summary, a list of key points, or numbered questions and answers. Calls the configured language model."),
		mcp.WithString("url",
			mcp.Description("YouTube video URL or 11 character video ID"),
			mcp.Required(),
		),
		mcp.WithString("material_type",
			mcp.Description("Kind of material to generate"),
			mcp.Enum(MaterialSummary.String(), MaterialKeyPoints.String(), MaterialQuestions.String()),
			mcp.Required(),
		),
		mcp.WithString("language",
			mcp.Description("Output language: es or en. Defaults to the configured language."),
			mcp.Enum(string(LanguageSpanish), string(LanguageEnglish)),
		),
	), s.handleGenerateStudyMaterial)
}

func (s *MCPServer) handleGetMetadata(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}

	metadata, err := s.app.Metadata(ctx, url)
	if err != nil {
		s.log.Error("metadata tool failed", "url", url, "error", err)
		return mcp.NewToolResultErrorFromErr("metadata error", err), nil
	}

	return mcp.NewToolResultText(formatMetadata(metadata)), nil
}

func (s *MCPServer) handleGetTranscript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	lang, err := toolLanguage(request)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("invalid language", err), nil
	}

	transcript, err := s.app.GetTranscript(ctx, url, lang)
	if err != nil {
		s.log.Error("transcript tool failed", "url", url, "error", err)
		return mcp.NewToolResultErrorFromErr(transcriptFailureHint(err), err), nil
	}

	return mcp.NewToolResultText(transcript), nil
}

func (s *MCPServer) handleGenerateStudyMaterial(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError("url parameter is required and must be a string"), nil
	}
	materialArg, err := request.RequireString("material_type")
	if err != nil {
		return mcp.NewToolResultError("material_type parameter is required and must be a string"), nil
	}
	material, err := ParseMaterialType(materialArg)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("invalid material_type", err), nil
	}
	lang, err := toolLanguage(request)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("invalid language", err), nil
	}
	lang = s.app.Language(lang)

	s.log.Info("generating study material", "url", url, "material", material.String(), "language", string(lang))
	body, err := s.app.Study(ctx, url, material, lang)
	if err != nil {
		s.log.Error("study tool failed", "url", url, "material", material.String(), "error", err)
		return mcp.NewToolResultErrorFromErr("generation failed", err), nil
	}

	return mcp.NewToolResultText(MaterialDocument(material, body, lang)), nil
}

// Start starts the MCP server using the specified transport
func (s *MCPServer) Start(ctx context.Context, transport string, port int) error {
	switch transport {
	case "http":
		httpServer := server.NewStreamableHTTPServer(s.mcpServer)
		addr := fmt.Sprintf(":%d", port)
		s.log.Info("serving MCP over HTTP", "addr", addr)

		errCh := make(chan error, 1)
		go func() { errCh <- httpServer.Start(addr) }()
		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
			return httpServer.Shutdown(context.Background())
		}
	case "stdio", "":
		s.log.Info("serving MCP over stdio")
		return server.ServeStdio(s.mcpServer)
	default:
		return &ConfigError{Reason: fmt.Sprintf("unknown transport %q (supported: stdio, http)", transport)}
	}
}

// toolLanguage reads the optional language argument; empty means the default
func toolLanguage(request mcp.CallToolRequest) (Language, error) {
	value := request.GetString("language", "")
	if value == "" {
		return "", nil
	}
	return ParseLanguage(value)
}

func transcriptFailureHint(err error) string {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		switch srcErr.Kind {
		case SourceDisabled:
			return "captions are disabled for this video"
		case SourceNotFound:
			return "no captions in the requested language or English"
		case SourceUnavailable:
			return "video is unavailable"
		case SourceRateLimited:
			return "YouTube is rate limiting requests, try again later"
		}
	}
	return "failed to fetch captions"
}

func formatMetadata(metadata *VideoMetadata) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Title: %s\n", metadata.Title)
	fmt.Fprintf(&buf, "Channel: %s\n", metadata.Channel)
	fmt.Fprintf(&buf, "Duration: %.0f seconds\n", metadata.Duration)
	fmt.Fprintf(&buf, "Description: %s\n", metadata.Description)
	fmt.Fprintf(&buf, "Has Captions: %t\n", metadata.HasCaptions)

	if len(metadata.CaptionLanguages) > 0 {
		fmt.Fprintf(&buf, "Caption Languages: %s\n", strings.Join(metadata.CaptionLanguages, ", "))
	}
	if len(metadata.Tags) > 0 {
		fmt.Fprintf(&buf, "Tags: %s\n", strings.Join(metadata.Tags, ", "))
	}
	if len(metadata.Categories) > 0 {
		fmt.Fprintf(&buf, "Categories: %s\n", strings.Join(metadata.Categories, ", "))
	}
	for _, ch := range metadata.Chapters {
		fmt.Fprintf(&buf, "Chapter (%.0f-%.0f): %s\n", ch.StartTime, ch.EndTime, ch.Title)
	}

	return buf.String()
}
