// Package generation provides interfaces and implementations for interacting
// with external AI/LLM services for content generation. It abstracts the
// details of LLM API integration (Gemini), allowing the application to derive
// career recommendations from assessment results without coupling to specific
// external services.
package generation
