// Package twiml renders the subset of Twilio's voice markup the call flow
// uses: Say, Play, Gather, Redirect and Hangup. Documents are built verb by
// verb and rendered with String.
package twiml

import (
	"fmt"
	"strings"
)

// Fixed speech-recognition settings for every Gather. The transcripts are
// Hinglish, so recognition runs in multi-language mode.
const (
	speechModel    = "deepgram_nova-3"
	gatherLanguage = "multi"
)

// verbList accumulates rendered verbs, shared by Response and Gather.
type verbList struct {
	verbs []string
}

// Say speaks text with Twilio's built-in voice. Used as the fallback when
// no synthesized audio artifact is available.
func (v *verbList) Say(text, language string) {
	v.verbs = append(v.verbs, fmt.Sprintf(`<Say language="%s">%s</Say>`, escapeXML(language), escapeXML(text)))
}

// Play streams an audio file to the caller. Relative URLs are resolved by
// Twilio against the webhook host.
func (v *verbList) Play(audioURL string) {
	v.verbs = append(v.verbs, "<Play>"+escapeXML(audioURL)+"</Play>")
}

// Response is a top-level TwiML document.
type Response struct {
	verbList
}

func NewResponse() *Response {
	return &Response{}
}

// Redirect hands the call to another webhook. Twilio re-submits the current
// request parameters there.
func (r *Response) Redirect(action string) {
	r.verbs = append(r.verbs, "<Redirect>"+escapeXML(action)+"</Redirect>")
}

// Hangup ends the call.
func (r *Response) Hangup() {
	r.verbs = append(r.verbs, "<Hangup/>")
}

// Append adds a completed Gather to the response.
func (r *Response) Append(g *Gather) {
	r.verbs = append(r.verbs, g.render())
}

// String renders the document with the XML declaration Twilio expects.
func (r *Response) String() string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString("<Response>")
	for _, verb := range r.verbs {
		b.WriteString(verb)
	}
	b.WriteString("</Response>")
	return b.String()
}

// Gather collects the caller's next utterance and posts the transcript to
// the action webhook. Prompt verbs added to it play while Twilio listens,
// so the caller can barge in over them.
type Gather struct {
	verbList
	action  string
	timeout int
}

// NewGather configures speech collection posting to action. Timeout is the
// seconds of silence Twilio waits before falling through to whatever verbs
// follow the Gather.
func NewGather(action string, timeout int) *Gather {
	return &Gather{action: action, timeout: timeout}
}

func (g *Gather) render() string {
	var b strings.Builder
	fmt.Fprintf(&b, `<Gather input="speech" action="%s" method="POST" speechModel="%s" language="%s" timeout="%d" bargeIn="true">`,
		escapeXML(g.action), speechModel, gatherLanguage, g.timeout)
	for _, verb := range g.verbs {
		b.WriteString(verb)
	}
	b.WriteString("</Gather>")
	return b.String()
}

// escapeXML escapes special characters for XML content.
func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}
