package strategy

import "github.com/viralgrowth/viralgrowth/internal/genai"

// resultSchema constrains generation output to the exact StrategyResult
// shape. Field descriptions steer the model; the hard guarantees come from
// validateShape after decoding.
var resultSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"analysis": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"hookAssessment":   {Type: genai.TypeString, Description: "Análise da força do hook atual."},
				"valueProposition": {Type: genai.TypeString, Description: "Ponto de dor resolvido ou valor entregue."},
				"originalityTrend": {Type: genai.TypeString, Description: "Análise de originalidade vs tendência."},
				"trendContext":     {Type: genai.TypeString, Description: "Contexto de tendências em tempo real obtido via Search."},
				"scores": {
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"watchTime":       {Type: genai.TypeInteger, Description: "Nota de 1 a 5"},
						"shareability":    {Type: genai.TypeInteger, Description: "Nota de 1 a 5"},
						"saveability":     {Type: genai.TypeInteger, Description: "Nota de 1 a 5"},
						"commentVelocity": {Type: genai.TypeInteger, Description: "Nota de 1 a 5"},
					},
					Required: []string{"watchTime", "shareability", "saveability", "commentVelocity"},
				},
			},
			Required: []string{"hookAssessment", "valueProposition", "originalityTrend", "scores"},
		},
		"optimization": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"formatRecommendation": {Type: genai.TypeString},
				"hookVariations":       {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				"optimizedCTA":         {Type: genai.TypeString, Description: "CTA obrigatório: Combine viralização oculta (Salvar/Compartilhar) com engajamento visível (Comentar). Ex: 'Salve este post para não esquecer e comente sua opinião mais controversa!'."},
			},
			Required: []string{"formatRecommendation", "hookVariations", "optimizedCTA"},
		},
		"platforms": {
			Type: genai.TypeArray,
			Items: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":        {Type: genai.TypeString},
					"tactics":     {Type: genai.TypeString},
					"keyElements": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
				Required: []string{"name", "tactics", "keyElements"},
			},
		},
		"distribution": {
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"timing":         {Type: genai.TypeString},
				"initialTrigger": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
			},
			Required: []string{"timing", "initialTrigger"},
		},
	},
	Required: []string{"analysis", "optimization", "platforms", "distribution"},
}
