package constants

// Error message prefixes for the result envelope.
const GITHUB_ERROR_PREFIX = "GitHub API error: "
const UNEXPECTED_ERROR_PREFIX = "Unexpected error: "

// Sentinels used when upstream omits a field.
const UNKNOWN_AUTHOR = "unknown"

// Marker appended to file contents cut at the text cap.
const TRUNCATION_MARKER = "\n\n... [TRUNCATED - File too long]"

// Date layout for all envelope date fields.
const DATE_FORMAT = "2006-01-02"

// Default request counts.
const DEFAULT_COMMIT_COUNT = 10
const DEFAULT_RELEASE_COUNT = 10

// Default caps for bounded collections and payloads. Overridable per call
// through config.Limits.
const MAX_COMMITS = 100
const MAX_COMPARE_COMMITS = 50
const MAX_COMPARE_FILES = 30
const MAX_TREE_FILES = 200
const MAX_TREE_DIRS = 100
const MAX_FILE_BYTES = 500000
const MAX_CONTENT_CHARS = 50000
const RELEASE_BODY_CHARS = 500

// Page size for paginated upstream listings.
const LIST_PAGE_SIZE = 50
