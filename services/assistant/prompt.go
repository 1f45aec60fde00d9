package assistant

import (
	"encoding/json"
	"fmt"

	"matero/models"
	"matero/services/ai"
)

// aiContextLimit caps how much of the AI transcript goes into each prompt.
const aiContextLimit = 20

const systemPromptTemplate = `You are a material-request assistant for construction sites.
The user is assembling this request draft:
%s
Help them complete it. When you can infer draft fields from the conversation,
append exactly one block of the form [ACTION_JSON]{"action":"update_request",...}[/ACTION_JSON]
at the end of your reply, with any of: siteName, priority (low|medium|high|urgent),
items (materialId or name plus quantity), notes. Never mention the block itself.`

// buildPrompt projects the AI-context transcript and a draft snapshot into
// the message list for the completion endpoint. Pure: no state is touched.
func buildPrompt(st ConvState) []ai.Message {
	snapshot, err := json.Marshal(st.Draft)
	if err != nil {
		snapshot = []byte("{}")
	}

	msgs := []ai.Message{{
		Role:    models.RoleSystem,
		Content: fmt.Sprintf(systemPromptTemplate, snapshot),
	}}

	history := st.AIMessages
	if len(history) > aiContextLimit {
		history = history[len(history)-aiContextLimit:]
	}
	for _, m := range history {
		msgs = append(msgs, ai.Message{Role: m.Role, Content: m.Content})
	}
	return msgs
}
