package llm

import (
	"fmt"
	"strings"
)

// AnalysisParams tune the structured-extraction call: low temperature, room
// for a full JSON schema description.
var AnalysisParams = GenerateParams{
	MaxNewTokens: 800,
	Temperature:  0.3,
	TopP:         0.95,
	DoSample:     true,
}

// AnswerParams tune the short free-text answer to a general question.
var AnswerParams = GenerateParams{
	MaxNewTokens: 150,
	Temperature:  0.7,
	TopP:         0.95,
	DoSample:     true,
}

// BuildAnalysisPrompt wraps the user's request in the structured-extraction
// instruction. The contract: the reply must contain one JSON object with
// "entities" (name + typed attributes) and "relationships" (from, to, type),
// every entity must carry an id attribute, and types come from the fixed
// vocabulary.
func BuildAnalysisPrompt(input string) string {
	return fmt.Sprintf(`<s>[INST] You are a database expert. Analyze this request and identify the entities, attributes, and relationships:
%q

Format your response as a structured JSON with these exact keys:
1. "entities": Array of entity objects with "name" and "attributes" (array of attribute objects with "name" and "type")
2. "relationships": Array of relationship objects with "from", "to", and "type" (one-to-one, one-to-many, many-to-many)

Be precise and only include entities and attributes explicitly mentioned or strongly implied in the request.
Use appropriate data types (uuid, varchar, text, integer, decimal, boolean, date, timestamp).
Ensure all entities have an id attribute.
[/INST]`, input)
}

// BuildAnswerPrompt asks for a concise prose answer to a general database
// question. No schema is produced from this call.
func BuildAnswerPrompt(input string) string {
	return fmt.Sprintf(`<s>[INST] You are a database expert. Answer this question concisely: %q (max 2-3 sentences). Use simple language. [/INST]`, input)
}

// CleanReply strips the echoed prompt (hosted inference returns prompt plus
// completion as one string) and any leftover instruction tags.
func CleanReply(reply, prompt string) string {
	if idx := strings.Index(reply, prompt); idx != -1 {
		reply = reply[idx+len(prompt):]
	}
	reply = strings.ReplaceAll(reply, "[INST]", "")
	reply = strings.ReplaceAll(reply, "[/INST]", "")
	return strings.TrimSpace(reply)
}
