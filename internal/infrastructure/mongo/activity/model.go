package activity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Activity struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UUID        string             `bson:"uuid"`
	Type        string             `bson:"type"`
	Description string             `bson:"description"`
	UserID      string             `bson:"user_id"`
	ProjectID   *string            `bson:"project_id,omitempty"`
	TaskID      *string            `bson:"task_id,omitempty"`
	Metadata    map[string]any     `bson:"metadata"`
	CreatedAt   time.Time          `bson:"created_at"`
}
