package assistant

import (
	"strconv"
	"strings"

	"inventra/internal/memory"
	"inventra/internal/models"
)

// Refusal is returned for queries judged unrelated to the inventory.
const Refusal = "I'm sorry, but I can only help you with questions about your products and inventory. Please ask me something related to your products!"

const emptyInventory = "No products found in inventory."

// InventorySummary renders one line per product.
func InventorySummary(products []models.Product) string {
	if len(products) == 0 {
		return emptyInventory
	}
	var b strings.Builder
	for i, p := range products {
		if i > 0 {
			b.WriteByte('\n')
		}
		desc := p.Description
		if strings.TrimSpace(desc) == "" {
			desc = "No description"
		}
		cat := string(p.Category)
		if cat == "" {
			cat = "Uncategorized"
		}
		active := "Yes"
		if !p.IsActive {
			active = "No"
		}
		b.WriteString("- " + p.Name + ": " + desc)
		b.WriteString(" (Category: " + cat)
		b.WriteString(", Quantity: " + strconv.Itoa(p.Quantity))
		b.WriteString(", Price: $" + strconv.FormatFloat(p.UnitPrice, 'f', -1, 64))
		b.WriteString(", Active: " + active + ")")
	}
	return b.String()
}

// historyLines renders exchanges as alternating User/Bot lines.
func historyLines(history []memory.Exchange) string {
	var b strings.Builder
	for i, ex := range history {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("User: " + ex.User + "\nBot: " + ex.Bot)
	}
	return b.String()
}

func classificationPrompt(query string, history []memory.Exchange) string {
	if len(history) > 2 {
		history = history[len(history)-2:]
	}
	var b strings.Builder
	b.WriteString("Analyze this user query and determine if it's related to products, inventory, items, or business goods.\n")
	b.WriteString("Consider the conversation context for follow-up questions.\n\n")
	if len(history) > 0 {
		b.WriteString("Recent conversation context:\n" + historyLines(history) + "\n\n")
	}
	b.WriteString("Current Query: \"" + query + "\"\n\n")
	b.WriteString("Respond with only \"YES\" if the query is about products/inventory/items/goods (including follow-up questions about previously discussed products), or \"NO\" if it's about something else entirely.\n")
	b.WriteString("Do not provide any explanation, just YES or NO.")
	return b.String()
}

func answerPrompt(query, inventory string, history []memory.Exchange) string {
	var b strings.Builder
	b.WriteString("You are a friendly and helpful chatbot assistant for a product inventory system. ")
	b.WriteString("Answer the user's question about their products in a conversational, single-line response.\n\n")
	b.WriteString("User's Product Inventory:\n" + inventory + "\n\n")
	if len(history) > 0 {
		b.WriteString("Recent Conversation:\n" + historyLines(history) + "\n\n")
	}
	b.WriteString("Current User Question: " + query + "\n\n")
	b.WriteString(`Instructions:
- Answer in exactly ONE line like a chatbot would
- Be friendly, conversational, and helpful
- Use the conversation history to understand context and follow-up questions
- Keep it concise but natural (like "You have 10 electronics items worth $5,000 total!")
- Only mention products listed in the inventory above; never invent products
- If they ask about products they don't have, politely mention they don't have those items
- Use a warm, helpful tone like you're talking to a friend
- Don't use bullet points or multiple sentences - just one friendly line

Response:`)
	return b.String()
}
