package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldFilename   = "filename"
	FieldRowCount   = "row_count"
	FieldValidRows  = "valid_rows"
	FieldAnchor     = "anchor"
	FieldMonthKey   = "month_key"
	FieldIncome     = "income"
	FieldReportID   = "report_id"
	FieldAdviceLen  = "advice_count"
	FieldCategories = "categories"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentIngest  = "ingest"
	ComponentReport  = "report"
	ComponentAdvice  = "advice"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentCache   = "cache"
)

// Operations defines standard operation names
const (
	OpUpload   = "upload"
	OpAdvise   = "advise"
	OpParse    = "parse"
	OpStore    = "store"
	OpPublish  = "publish"
	OpConsume  = "consume"
	OpShutdown = "shutdown"
	OpStartup  = "startup"
)
