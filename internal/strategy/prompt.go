package strategy

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/viralgrowth/viralgrowth/internal/model"
)

// trendFallback stands in for trend context whenever the lookup fails or
// returns nothing. Prompts run in pt-BR to match the product's audience.
const trendFallback = "Nenhum dado de tendência específico encontrado."

// multimodalSystemInstruction primes the multimodal model; the reasoning
// model works from its thinking budget instead.
const multimodalSystemInstruction = "Você é um Especialista Sênior em Crescimento e Viralização."

// maxLearningEntries caps how many past sessions feed recalibration.
const maxLearningEntries = 3

// trendQuery builds the search-grounded pre-step prompt.
func trendQuery(content string) string {
	return fmt.Sprintf(`What are the current viral trends and algorithm updates for social media (Instagram, TikTok, LinkedIn, Facebook, Pinterest) related to: %q or general organic growth in 2024/2025? Summarize in 3 bullets.`, content)
}

// learningSample is the compact per-session shape serialized into the
// recalibration context.
type learningSample struct {
	Content     string                    `json:"content"`
	Objective   model.Objective           `json:"objective"`
	Performance *model.PerformanceMetrics `json:"performance"`
}

// learningContext serializes up to maxLearningEntries sessions that have
// real-world performance attached. Returns "" when none qualify.
func learningContext(entries []model.HistoryEntry) string {
	var samples []learningSample
	for _, e := range entries {
		if !e.HasPerformance() {
			continue
		}
		samples = append(samples, learningSample{
			Content:     e.Request.Content,
			Objective:   e.Request.Objective,
			Performance: e.Performance,
		})
		if len(samples) == maxLearningEntries {
			break
		}
	}
	if len(samples) == 0 {
		return ""
	}

	data, err := json.MarshalIndent(samples, "", "  ")
	if err != nil {
		return ""
	}

	return fmt.Sprintf(`CONTEXTO DE APRENDIZADO (Performance Passada):
%s
Instrução: Recalibre a estratégia. Se o compartilhamento foi alto antes, dobre a aposta na tática usada.`, data)
}

// buildPrompt assembles the main generation prompt from the request, the
// trend pre-step output and the recalibration context.
func buildPrompt(req model.StrategyRequest, trendContext, learning string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "CONTEXTO DE TENDÊNCIAS (Real-time):\n%s\n\n", trendContext)
	if learning != "" {
		b.WriteString(learning)
		b.WriteString("\n\n")
	}

	b.WriteString("Analise o seguinte conteúdo e objetivo para criar uma estratégia de viralização orgânica Multicanal.\n\n")
	fmt.Fprintf(&b, "Conteúdo: %q\n", req.Content)
	fmt.Fprintf(&b, "Objetivo: %q\n\n", req.Objective)

	if req.HasMedia() {
		b.WriteString("ATENÇÃO: Analise o ARQUIVO visual/auditivo fornecido.\n")
		switch req.Media.Kind {
		case model.MediaVideo:
			b.WriteString("CONTEXTO DE HOOKS: Gere hooks focados em ritmo visual, movimento nos primeiros 3s e cortes rápidos.\n")
		case model.MediaImage:
			b.WriteString("CONTEXTO DE HOOKS: Gere hooks visuais que referenciem cores, elementos de texto na imagem ou curiosidade visual.\n")
		}
		b.WriteString("\n")
	}

	hookQualifier := ""
	if req.HasMedia() {
		hookQualifier = " CONTEXTUAIS À MÍDIA"
	}
	fmt.Fprintf(&b, `Metodologia Growth Hacking:
1. Avalie Hook, Valor, Originalidade.
2. Scores (1-5).
3. Formato ideal.
4. 3 Hooks%s.
5. CTA Viral (Compartilhar/Salvar + Comentar).
6. Táticas por plataforma (Instagram, TikTok, LinkedIn, Facebook, Pinterest, Twitter/X).
7. Distribuição.

Retorne APENAS JSON.`, hookQualifier)

	return b.String()
}
