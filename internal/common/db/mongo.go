package db

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Documents written by this service use string UUID keys. Older documents
// carry ObjectID keys, so lookups accept both forms.

func MongoIDFilter(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"$in": bson.A{oid, id}}
	}
	return id
}

func MongoIDString(v bson.RawValue) (string, error) {
	switch v.Type {
	case bsontype.ObjectID:
		return v.ObjectID().Hex(), nil
	case bsontype.String:
		return v.StringValue(), nil
	default:
		return "", fmt.Errorf("unsupported _id type %s", v.Type)
	}
}
