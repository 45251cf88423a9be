package models

const (
	// DefaultTopK is the number of chunks retrieved to ground a chat answer
	DefaultTopK = 3

	MetadataSource = "source"
	MetadataPage   = "page"

	ErrorFragmentPrefix = "Error: "
)

// messages returned to HTTP clients
const (
	MsgUploadSuccess  = "File successfully processed and added to the vector database"
	MsgNoFileProvided = "No file provided"
	MsgNoSelectedFile = "No selected file"
	MsgMissingQuery   = "Missing 'query' in request body"
	MsgEmptyIndex     = "Vector database is empty. Please upload files first."
	MsgInvalidBody    = "Invalid JSON in request body"
)

var (
	SystemPromptTemplate = `Use the following context for answering: %s`
)
