package generativeAI

import (
	"strings"
)

// cleanJSONResponse strips markdown fences and any prose around the first JSON
// object or array in an LLM answer.
func cleanJSONResponse(response string) string {
	response = strings.TrimSpace(response)

	if strings.HasPrefix(response, "```json") {
		response = strings.TrimPrefix(response, "```json")
	} else if strings.HasPrefix(response, "```") {
		response = strings.TrimPrefix(response, "```")
	}
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	open := strings.IndexAny(response, "{[")
	if open == -1 {
		return response
	}
	closer := "}"
	if response[open] == '[' {
		closer = "]"
	}
	end := strings.LastIndex(response, closer)
	if end == -1 || end <= open {
		return response
	}
	return response[open : end+1]
}
