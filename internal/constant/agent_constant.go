package constant

const (
	ChatMessageRoleUser      = "user"
	ChatMessageRoleAssistant = "assistant"
	ChatMessageRoleSystem    = "system"

	// Resource processing pipeline
	EmbedResourceTopicName = "EMBED_RESOURCE_CONTENT"

	// Chunking parameters for resource documents.
	// 1500 chars is roughly 375 tokens, safe for every embedding model we use.
	ResourceChunkSize    = 1500
	ResourceChunkOverlap = 200

	// Embedding dimensions for text-embedding-3-small.
	EmbeddingDimensions = 1536

	// Resource processing states
	ResourceStatusPending    = "pending"
	ResourceStatusProcessing = "processing"
	ResourceStatusCompleted  = "completed"
	ResourceStatusFailed     = "failed"

	// Task states
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"

	// Learning plan states
	PlanStatusActive    = "active"
	PlanStatusCompleted = "completed"
	PlanStatusArchived  = "archived"
)
