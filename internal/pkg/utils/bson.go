package utils

import "go.mongodb.org/mongo-driver/bson"

// ToBsonSet marshals a model into the document used for $set updates,
// dropping _id so the immutable field is never written back.
func ToBsonSet(model interface{}) (bson.M, error) {
	data, err := bson.Marshal(model)
	if err != nil {
		return nil, err
	}
	doc := bson.M{}
	if err := bson.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	delete(doc, "_id")
	return doc, nil
}
