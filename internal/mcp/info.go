package mcp

const (
	// ServerName is advertised by both adapters.
	ServerName = "Baseline MCP Server"
	// ServerVersion is advertised by both adapters.
	ServerVersion = "1.0.0"
	// ProtocolVersion is returned by the stateless initialize handshake.
	ProtocolVersion = "2025-06-18"
	// DataSource names the upstream dataset in health output.
	DataSource = "webstatus.dev API"

	serverDescription  = "Web Platform Baseline status over stateless HTTP"
	serverInstructions = "Use get_web_feature_baseline_status to look up browser support for web platform features, " +
		"and get_baseline_summary for an overview of the Baseline status categories."
)

// Transport labels used in metrics.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)
