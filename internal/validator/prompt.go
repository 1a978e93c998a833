package validator

import (
	"fmt"

	"github.com/viralgrowth/viralgrowth/internal/genai"
	"github.com/viralgrowth/viralgrowth/internal/model"
)

// roleFor selects the specialist persona for the asset kind.
func roleFor(kind model.AssetKind) string {
	switch kind {
	case model.AssetText:
		return "Editor Chefe e Copywriter Sênior."
	case model.AssetImage:
		return "Diretor de Arte Sênior e Especialista em Neuro-Marketing."
	case model.AssetVideo:
		return "Diretor de Vídeo e Especialista em Retenção."
	case model.AssetAudio:
		return "Produtor de Áudio."
	default:
		return "Especialista em Marketing."
	}
}

func buildPrompt(req Request) string {
	material := "Veja anexo."
	if req.Kind == model.AssetText {
		material = req.Content
	}

	return fmt.Sprintf(`Estratégia Base: %s
Papel: %s

Analise o material.
- IMAGEM: Calcule 'stoppingPowerScore' e 'estimatedFixationTime'. Sugira paleta de cores específica (hex codes) alinhada à identidade da marca e impacto psicológico desejado.
- TEXTO/VÍDEO/ÁUDIO: Siga as melhores práticas de retenção.

Retorne JSON.
Material: %s`, req.StrategyContext, roleFor(req.Kind), material)
}

// analysisSchema constrains validation output to the ContentAnalysisResult
// shape.
var analysisSchema = &genai.Schema{
	Type: genai.TypeObject,
	Properties: map[string]*genai.Schema{
		"score":            {Type: genai.TypeInteger, Description: "Score from 0 to 100 based on viral potential"},
		"feedback":         {Type: genai.TypeString, Description: "Senior specialist feedback on what is good and bad"},
		"improvements":     {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}, Description: "List of specific changes to make"},
		"rewrittenContent": {Type: genai.TypeString, Description: "The improved text version OR detailed instructions for image/video/audio editing"},
		"visualAnalysis": {
			Type:        genai.TypeObject,
			Nullable:    true,
			Description: "Only populate for IMAGE analysis. Returns null for text/audio/video.",
			Properties: map[string]*genai.Schema{
				"estimatedFixationTime": {Type: genai.TypeString, Description: "Estimated time eye pauses on image (e.g. '0.5s (Flash)' or '3.5s (Deep)'). Explain reasoning."},
				"stoppingPowerScore":    {Type: genai.TypeInteger, Description: "0-100 score. High score means immediate attention grab (Contrast/Face/Surprise)."},
				"colorPalette": {
					Type: genai.TypeArray,
					Items: &genai.Schema{
						Type: genai.TypeObject,
						Properties: map[string]*genai.Schema{
							"hex":        {Type: genai.TypeString, Description: "Hex code #RRGGBB"},
							"usage":      {Type: genai.TypeString, Description: "Where to use this color (Background, CTA, Text)"},
							"psychology": {Type: genai.TypeString, Description: "Psychological effect (e.g. Urgency, Trust) aligned with brand Identity."},
						},
					},
				},
			},
		},
	},
	Required: []string{"score", "feedback", "improvements", "rewrittenContent"},
}
