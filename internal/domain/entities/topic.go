package entities

import "sort"

// All is the wildcard value for topic and category selectors.
const All = "all"

// topics maps topic ids to their display names.
var topics = map[string]string{
	"topic01": "Definitions of road users",
	"topic02": "Vehicles and basic mechanics",
	"topic03": "License and points",
	"topic04": "Roads and speed",
	"topic05": "Headlights and lighting",
	"topic06": "Documents",
	"topic07": "Traffic regulations",
	"topic08": "Special lanes",
	"topic09": "Signs and rules",
	"topic10": "Maneuvers",
	"topic11": "Safety",
	"topic12": "Emergencies",
	"topic13": "Transportation of goods and children",
}

// Topic is a subject area cards can be tagged with.
type Topic struct {
	ID   string
	Name string
}

// TopicName returns the display name of a topic id.
func TopicName(id string) string {
	if name, ok := topics[id]; ok {
		return name
	}
	return "Unknown Topic"
}

// IsKnownTopic reports whether id is part of the topic catalogue.
func IsKnownTopic(id string) bool {
	_, ok := topics[id]
	return ok
}

// AllTopics returns the topic catalogue ordered by id.
func AllTopics() []Topic {
	out := make([]Topic, 0, len(topics))
	for id, name := range topics {
		out = append(out, Topic{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
