package genai

// Schema type constants for structured output constraints.
const (
	TypeObject  = "OBJECT"
	TypeArray   = "ARRAY"
	TypeString  = "STRING"
	TypeInteger = "INTEGER"
	TypeNumber  = "NUMBER"
	TypeBoolean = "BOOLEAN"
)

// Schema describes the strict JSON shape requested from the backend.
// Mirrors the generative API's response schema vocabulary.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Nullable    bool               `json:"nullable,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
}

// Blob is inlined media content. Data marshals as base64.
type Blob struct {
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// Part is one piece of a prompt or response: text or inlined media.
type Part struct {
	Text       string `json:"text,omitempty"`
	InlineData *Blob  `json:"inlineData,omitempty"`
}

// Content is an ordered list of parts with an optional role.
type Content struct {
	Role  string `json:"role,omitempty"`
	Parts []Part `json:"parts"`
}

// Tool enables a backend-side capability for a generation call.
type Tool struct {
	GoogleSearch *struct{} `json:"googleSearch,omitempty"`
}

// ThinkingConfig extends the reasoning budget of a capable model.
type ThinkingConfig struct {
	ThinkingBudget int `json:"thinkingBudget"`
}

// PrebuiltVoiceConfig selects a named prebuilt voice.
type PrebuiltVoiceConfig struct {
	VoiceName string `json:"voiceName"`
}

// VoiceConfig wraps the voice selection for speech synthesis.
type VoiceConfig struct {
	PrebuiltVoiceConfig PrebuiltVoiceConfig `json:"prebuiltVoiceConfig"`
}

// SpeechConfig configures speech synthesis output.
type SpeechConfig struct {
	VoiceConfig VoiceConfig `json:"voiceConfig"`
}

// GenerationConfig carries per-call output constraints.
type GenerationConfig struct {
	ResponseMIMEType   string          `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema         `json:"responseSchema,omitempty"`
	ResponseModalities []string        `json:"responseModalities,omitempty"`
	ThinkingConfig     *ThinkingConfig `json:"thinkingConfig,omitempty"`
	SpeechConfig       *SpeechConfig   `json:"speechConfig,omitempty"`
}

// generateContentRequest is the wire shape of a generateContent call.
type generateContentRequest struct {
	Contents          []Content         `json:"contents"`
	SystemInstruction *Content          `json:"systemInstruction,omitempty"`
	Tools             []Tool            `json:"tools,omitempty"`
	GenerationConfig  *GenerationConfig `json:"generationConfig,omitempty"`
}

type candidate struct {
	Content      *Content `json:"content"`
	FinishReason string   `json:"finishReason,omitempty"`
}

type generateContentResponse struct {
	Candidates []candidate `json:"candidates"`
}

// apiErrorEnvelope is the backend's non-2xx response body.
type apiErrorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// GenerateTextRequest describes a structured text generation call.
type GenerateTextRequest struct {
	Model  string
	Parts  []Part
	System string
	// UseGoogleSearch enables search grounding (no response schema allowed).
	UseGoogleSearch bool
	ResponseSchema  *Schema
	// ThinkingBudget > 0 extends the model's reasoning budget.
	ThinkingBudget int
}

// ImageRequest describes a single-call image generation.
type ImageRequest struct {
	Model          string
	Prompt         string
	AspectRatio    string
	OutputMIMEType string
}

// imagePredictRequest is the wire shape of a :predict image call.
type imagePredictRequest struct {
	Instances  []imageInstance `json:"instances"`
	Parameters imageParameters `json:"parameters"`
}

type imageInstance struct {
	Prompt string `json:"prompt"`
}

type imageParameters struct {
	SampleCount    int    `json:"sampleCount"`
	AspectRatio    string `json:"aspectRatio,omitempty"`
	OutputMIMEType string `json:"outputMimeType,omitempty"`
}

type imagePredictResponse struct {
	Predictions []struct {
		BytesBase64Encoded []byte `json:"bytesBase64Encoded"`
		MIMEType           string `json:"mimeType,omitempty"`
	} `json:"predictions"`
}

// VideoRequest describes a long-running video generation job.
type VideoRequest struct {
	Model       string
	Prompt      string
	Resolution  string
	AspectRatio string
}

// videoSubmitRequest is the wire shape of a :predictLongRunning call.
type videoSubmitRequest struct {
	Instances  []videoInstance `json:"instances"`
	Parameters videoParameters `json:"parameters"`
}

type videoInstance struct {
	Prompt string `json:"prompt"`
}

type videoParameters struct {
	SampleCount int    `json:"sampleCount"`
	Resolution  string `json:"resolution,omitempty"`
	AspectRatio string `json:"aspectRatio,omitempty"`
}

// VideoOperation is the observable state of a server-side video job.
// The job handle (Name) is opaque; VideoURI is set only once Done.
type VideoOperation struct {
	Name     string
	Done     bool
	VideoURI string
}

// videoOperationResponse is the wire shape of an operation poll.
type videoOperationResponse struct {
	Name     string `json:"name"`
	Done     bool   `json:"done"`
	Response *struct {
		GenerateVideoResponse *struct {
			GeneratedSamples []struct {
				Video struct {
					URI string `json:"uri"`
				} `json:"video"`
			} `json:"generatedSamples"`
		} `json:"generateVideoResponse"`
	} `json:"response,omitempty"`
}

// SpeechRequest describes a speech synthesis call.
type SpeechRequest struct {
	Model  string
	Script string
	Voice  string
}
