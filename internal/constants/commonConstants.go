package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
	OutputFormat  string
)

const (
	RequestSourceAPI        RequestSource = "API"
	RequestSourceChatClient RequestSource = "CHAT_CLIENT"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	FormatJSON OutputFormat = "json"
	FormatChat OutputFormat = "chat"

	CachePrefixOperatorSearch CachePrefix = "OPSEARCH_"
	CachePrefixGeographyMap   CachePrefix = "GEO_IATA_MAP"
	CachePrefixAppConfig      CachePrefix = "APP_CONFIG_ALL"
	CachePrefixContinuation   CachePrefix = "CHAT_CONT_"
)
