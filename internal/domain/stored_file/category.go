package stored_file

type (
	// Category is the semantic class assigned to an upload.
	Category string
	// Partition is the storage namespace a category lives under.
	Partition string
)

const (
	CategoryAvatar   Category = "AVATAR"
	CategoryDocument Category = "DOCUMENT"
	CategoryImage    Category = "IMAGE"
	CategoryArchive  Category = "ARCHIVE"
	CategoryOther    Category = "OTHER"
)

const (
	PartitionAvatars   Partition = "avatars"
	PartitionImages    Partition = "images"
	PartitionDocuments Partition = "documents"
	PartitionOther     Partition = "other"
)

func (c Category) String() string  { return string(c) }
func (p Partition) String() string { return string(p) }
