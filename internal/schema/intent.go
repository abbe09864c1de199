package schema

import "strings"

// Intent is the category assigned to a user utterance. Classification is a
// pure function over fixed keyword sets; no model call is involved.
type Intent int

const (
	IntentUnrelated Intent = iota
	IntentGreeting
	IntentGratitude
	IntentSchemaQuestion
	IntentGeneralQuestion
	IntentSchemaRequest
)

func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentGratitude:
		return "gratitude"
	case IntentSchemaQuestion:
		return "schema-question"
	case IntentGeneralQuestion:
		return "general-question"
	case IntentSchemaRequest:
		return "schema-request"
	default:
		return "unrelated"
	}
}

var greetingPrefixes = []string{"hi", "hello", "hey", "greetings", "howdy"}

var questionPrefixes = []string{
	"what", "how", "why", "when", "where", "who",
	"can you", "could you", "would you",
	"is there", "are there", "do you",
	"explain", "define",
}

var databaseKeywords = []string{
	"database", "schema", "table", "field", "column",
	"entity", "model", "collection", "document", "record",
}

var gratitudeKeywords = []string{
	"thank", "thanks", "good", "great", "excellent", "awesome", "nice", "helpful",
}

var descriptionKeywords = []string{
	"manage", "track", "log", "store", "organize", "handle",
	"employees", "companies", "roles", "activities", "projects", "tasks",
}

var schemaQuestionPhrases = []string{"what is a schema", "define schema", "explain schema"}

// Classify assigns exactly one intent to the utterance, first match wins:
// greeting, then gratitude and general questions (only outside a schema
// context), then schema requests, then the unrelated fallback.
func Classify(input string) Intent {
	lower := strings.ToLower(strings.TrimSpace(input))

	if hasAnyPrefix(lower, greetingPrefixes) {
		return IntentGreeting
	}

	inSchemaContext := containsAny(lower, databaseKeywords)

	if containsAny(lower, gratitudeKeywords) && !inSchemaContext {
		return IntentGratitude
	}

	if hasAnyPrefix(lower, questionPrefixes) {
		if containsAny(lower, schemaQuestionPhrases) {
			return IntentSchemaQuestion
		}
		if !inSchemaContext {
			return IntentGeneralQuestion
		}
	}

	if inSchemaContext || containsAny(lower, descriptionKeywords) {
		return IntentSchemaRequest
	}

	return IntentUnrelated
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
