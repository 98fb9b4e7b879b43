package genai

// FieldKind is the primitive shape of a contract field.
type FieldKind string

const (
	KindString      FieldKind = "string"
	KindStringArray FieldKind = "string_array"
	KindObjectArray FieldKind = "object_array"
)

// Field declares one field of an output contract. Hint is a semantic
// description used only to steer the generator; it is never enforced on
// the consumer side. Items describes the element shape for object arrays.
type Field struct {
	Name  string
	Kind  FieldKind
	Hint  string
	Items []Field
}

// Contract is the declared output shape for a structured generation call.
// It renders both the provider-side response schema and the local JSON
// Schema used to validate the reply.
type Contract struct {
	Name     string
	Fields   []Field
	Required []string
}

// ResponseSchema renders the contract in the Gemini responseSchema dialect
// (uppercase OpenAPI type names, per-field descriptions).
func (c Contract) ResponseSchema() map[string]any {
	return map[string]any{
		"type":       "OBJECT",
		"properties": propertiesFor(c.Fields, true),
		"required":   append([]string(nil), c.Required...),
	}
}

// ValidationSchema renders the contract as a standard JSON Schema document
// for validating the model's reply locally.
func (c Contract) ValidationSchema() map[string]any {
	return map[string]any{
		"type":       "object",
		"properties": propertiesFor(c.Fields, false),
		"required":   append([]string(nil), c.Required...),
	}
}

func propertiesFor(fields []Field, provider bool) map[string]any {
	props := make(map[string]any, len(fields))
	for _, f := range fields {
		props[f.Name] = schemaFor(f, provider)
	}
	return props
}

func schemaFor(f Field, provider bool) map[string]any {
	typeName := func(t string) string {
		if provider {
			switch t {
			case "object":
				return "OBJECT"
			case "array":
				return "ARRAY"
			default:
				return "STRING"
			}
		}
		return t
	}

	var node map[string]any
	switch f.Kind {
	case KindStringArray:
		node = map[string]any{
			"type":  typeName("array"),
			"items": map[string]any{"type": typeName("string")},
		}
	case KindObjectArray:
		required := make([]string, 0, len(f.Items))
		for _, item := range f.Items {
			required = append(required, item.Name)
		}
		node = map[string]any{
			"type": typeName("array"),
			"items": map[string]any{
				"type":       typeName("object"),
				"properties": propertiesFor(f.Items, provider),
				"required":   required,
			},
		}
	default:
		node = map[string]any{"type": typeName("string")}
	}

	if f.Hint != "" {
		node["description"] = f.Hint
	}
	return node
}

// SEOContract is the full SEO generation contract.
func SEOContract() Contract {
	return Contract{
		Name: "seo_package",
		Fields: []Field{
			{Name: "titles", Kind: KindStringArray, Hint: "A list of 5 high-CTR, click-worthy video titles optimized for YouTube search and recommendations."},
			{Name: "description", Kind: KindString, Hint: "A highly engaging, professionally formatted YouTube video description. It must include a strong hook in the first 2 lines, a 'Question of the Day' to drive comments, a clear 'Subscribe' CTA, and placeholders for timestamps and social links."},
			{Name: "keywords", Kind: KindStringArray, Hint: "A list of 20-30 high-volume, low-competition tags/keywords separated by commas."},
			{Name: "hashtags", Kind: KindStringArray, Hint: "A list of 5-10 trending and relevant hashtags including the # symbol."},
			{Name: "category", Kind: KindString, Hint: "The most appropriate YouTube category for this video (e.g., Education, Entertainment, Tech)."},
			{Name: "algorithmStrategy", Kind: KindString, Hint: "A brief analysis of why this content works with the current algorithm (focus on retention, click-through rate, and engagement signals)."},
			{Name: "thumbnailIdeas", Kind: KindObjectArray, Hint: "List of 3 distinct, high-click-through-rate thumbnail concepts that complement the titles.", Items: []Field{
				{Name: "description", Kind: KindString, Hint: "Detailed visual description of the thumbnail image (scene, facial expression, colors, background)."},
				{Name: "text", Kind: KindString, Hint: "Short, punchy text overlay (max 3-5 words) to be placed on the image."},
			}},
		},
		Required: []string{"titles", "description", "keywords", "hashtags", "category", "algorithmStrategy", "thumbnailIdeas"},
	}
}

// TitlesContract covers title-only regeneration.
func TitlesContract() Contract {
	return Contract{
		Name: "seo_titles",
		Fields: []Field{
			{Name: "titles", Kind: KindStringArray, Hint: "A list of 5 NEW high-CTR, click-worthy video titles."},
		},
		Required: []string{"titles"},
	}
}

// DescriptionContract covers description-only regeneration.
func DescriptionContract() Contract {
	return Contract{
		Name: "seo_description",
		Fields: []Field{
			{Name: "description", Kind: KindString, Hint: "A NEW highly engaging, professionally formatted YouTube video description."},
		},
		Required: []string{"description"},
	}
}

// MarketingContract is the marketing-copy generation contract.
func MarketingContract() Contract {
	return Contract{
		Name: "marketing_copy",
		Fields: []Field{
			{Name: "strategy", Kind: KindString, Hint: "A brief, punchy marketing strategy explaining the tone and approach for the campaign."},
			{Name: "posts", Kind: KindObjectArray, Hint: "A list of 4 distinct posts optimized for Instagram, Twitter, LinkedIn, and Facebook.", Items: []Field{
				{Name: "platform", Kind: KindString, Hint: "The social media platform (e.g., Instagram, Twitter, LinkedIn, Facebook)."},
				{Name: "content", Kind: KindString, Hint: "The post content/caption. Use emojis where appropriate."},
				{Name: "hashtags", Kind: KindStringArray, Hint: "Relevant hashtags for the post."},
			}},
		},
		Required: []string{"strategy", "posts"},
	}
}
