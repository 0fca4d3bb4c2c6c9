package twilio

import (
	"fmt"
	"net/http"
	"sort"
	"strconv"

	"github.com/beevik/etree"
	"github.com/twilio/twilio-go/twiml"
)

const (
	greetingMessage    = "Assalamualaikum. This call may be answered by an AI assistant and recorded for order processing. Please speak after the beep. Press star to finish."
	noRecordingMessage = "We did not receive a recording. Goodbye."

	RecordMaxLengthSeconds = 120
	RecordFinishOnKey      = "*"
)

// twiml builds attributes from Go maps, so their order is random. Listed attributes are
// written in this order, anything else follows alphabetically.
var attrOrder = map[string][]string{
	"Record": {"action", "method", "maxLength", "playBeep", "finishOnKey"},
	"Say":    {"voice", "language", "loop"},
}

// render builds a <Response> document with a stable attribute order.
func render(verbs []twiml.Element) (string, error) {
	doc, response := twiml.CreateDocument()
	twiml.AddAllVerbs(response, verbs)
	for _, el := range response.ChildElements() {
		orderAttrs(el)
	}
	return twiml.ToXML(doc)
}

func orderAttrs(el *etree.Element) {
	order := attrOrder[el.Tag]
	rank := func(key string) int {
		for i, k := range order {
			if k == key {
				return i
			}
		}
		return len(order)
	}
	sort.SliceStable(el.Attr, func(i, j int) bool {
		ri, rj := rank(el.Attr[i].Key), rank(el.Attr[j].Key)
		if ri != rj {
			return ri < rj
		}
		return el.Attr[i].Key < el.Attr[j].Key
	})
	for _, child := range el.ChildElements() {
		orderAttrs(child)
	}
}

// EntryDocument greets the caller and records up to two minutes of speech, posting the
// recording to actionURL. The trailing Say only plays when nothing was captured.
func EntryDocument(actionURL, voice string) (string, error) {
	say := &twiml.VoiceSay{
		Voice:   voice,
		Message: greetingMessage,
	}
	record := &twiml.VoiceRecord{
		Action:      actionURL,
		Method:      http.MethodPost,
		MaxLength:   strconv.Itoa(RecordMaxLengthSeconds),
		PlayBeep:    "true",
		FinishOnKey: RecordFinishOnKey,
	}
	fallback := &twiml.VoiceSay{
		Voice:   voice,
		Message: noRecordingMessage,
	}

	doc, err := render([]twiml.Element{say, record, fallback})
	if err != nil {
		return "", fmt.Errorf("failed to build entry twiml: %w", err)
	}
	return doc, nil
}

// ReplyDocument reads the transcript back to the caller and ends the call.
func ReplyDocument(transcript, voice string) (string, error) {
	say := &twiml.VoiceSay{
		Voice:   voice,
		Message: fmt.Sprintf("Thank you. I heard: %s. Your order has been recorded. Goodbye.", transcript),
	}

	doc, err := render([]twiml.Element{say})
	if err != nil {
		return "", fmt.Errorf("failed to build reply twiml: %w", err)
	}
	return doc, nil
}

// SpeechDocument speaks a single line in the account's default voice.
func SpeechDocument(message string) (string, error) {
	doc, err := render([]twiml.Element{&twiml.VoiceSay{Message: message}})
	if err != nil {
		return "", fmt.Errorf("failed to build speech twiml: %w", err)
	}
	return doc, nil
}
