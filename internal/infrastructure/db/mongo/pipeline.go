package mongo

import "go.mongodb.org/mongo-driver/bson"

// Aggregation building blocks for the Dto list reads. The denormalized
// fields are computed here, at read time, and never written back to the
// source documents.

// countStages joins the named collection on the shared key and projects the
// number of matches into field.
func countStages(from, key, field string) []bson.D {
	joined := "_" + field
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         from,
			"localField":   key,
			"foreignField": key,
			"as":           joined,
		}}},
		{{Key: "$addFields", Value: bson.M{field: bson.M{"$size": "$" + joined}}}},
		{{Key: "$unset", Value: joined}},
	}
}

// nameStages joins the named collection on key and projects the first
// match's sourceField into field (e.g. the author's username onto a post).
func nameStages(from, key, sourceField, field string) []bson.D {
	joined := "_" + field
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         from,
			"localField":   key,
			"foreignField": key,
			"as":           joined,
		}}},
		{{Key: "$addFields", Value: bson.M{field: bson.M{"$first": "$" + joined + "." + sourceField}}}},
		{{Key: "$unset", Value: joined}},
	}
}

// sortStage orders a list read by its id field, matching insertion order.
func sortStage(idField string) bson.D {
	return bson.D{{Key: "$sort", Value: bson.M{idField: 1}}}
}
