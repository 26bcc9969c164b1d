package constants

const VERSION = "1.0.0"

const CLIUserAgent = "datashare-cli"

// RequestIDHeader is attached to every outgoing request so that client debug
// logs can be matched against backend logs.
const RequestIDHeader = "X-Request-ID"

const DefaultServer = "http://localhost:5001"
const DefaultProxyAddr = ":5173"

const ServerEnvVar = "DATASHARE_SERVER"

const DefaultPage = 1
const DefaultPerPage = 10

const UploadFieldName = "file"
const UploadSharedField = "is_shared"

const MaxPreviewSize = 5242880 // 5 mb
