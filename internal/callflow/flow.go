// Package callflow implements the spoken conversation as a set of webhook
// states. Each state is one POST handler; the response names the next state
// in its Gather action or Redirect target, so no conversation state lives in
// the process between turns. Twilio posts the transcript (SpeechResult) and
// the callee's number (To) to whichever state the previous response named.
package callflow

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sarthi-tvs/callagent/internal/dates"
	"github.com/sarthi-tvs/callagent/internal/models"
	"github.com/sarthi-tvs/callagent/internal/services"
	"github.com/sarthi-tvs/callagent/internal/twiml"
)

// Webhook routes. Each one is a conversation state; the transition table
// lives in the handlers below.
const (
	RouteGreeting          = "/voice"
	RouteConfirmVehicle    = "/car-number"
	RouteServiceDue        = "/service"
	RouteRescheduleConfirm = "/reschedule"
	RouteRescheduleDate    = "/reschedule-date"
	RouteOfferServices     = "/offer-services"
	RouteHandleServices    = "/handle-services"
)

// Gather timeouts in seconds. Date and service selection get longer pauses
// because callers think before answering those.
const (
	confirmTimeout   = 10
	selectionTimeout = 15
)

// RecordStore is the slice of the database the call flow reads and writes.
type RecordStore interface {
	GetUserByPhone(ctx context.Context, phoneNumber string) (*models.UserRecord, error)
	GetServiceRecord(ctx context.Context, vehicleNumber string) (*models.ServiceRecord, error)
	UpsertDueDate(ctx context.Context, vehicleNumber string, date time.Time) error
	AddSelectedServices(ctx context.Context, vehicleNumber string, names []string) error
}

// SpeechCache produces a playable reference for a prompt, synthesizing on a
// cache miss.
type SpeechCache interface {
	Synthesize(ctx context.Context, text string, params services.VoiceParams) (string, error)
}

// Flow holds the collaborators every state shares. Handlers never keep
// per-call state on it.
type Flow struct {
	classifier services.Classifier
	records    RecordStore
	speech     SpeechCache
}

func New(classifier services.Classifier, records RecordStore, speech SpeechCache) *Flow {
	return &Flow{
		classifier: classifier,
		records:    records,
		speech:     speech,
	}
}

// Greeting handles POST /voice, the call's entry point. It welcomes the
// callee and moves straight to vehicle confirmation.
func (f *Flow) Greeting(w http.ResponseWriter, r *http.Request) {
	resp := twiml.NewResponse()
	f.speak(r.Context(), resp, greetingText, greetingFallback)
	resp.Redirect(RouteConfirmVehicle)
	writeTwiML(w, resp)
}

// ConfirmVehicle handles POST /car-number. It looks the callee up by phone
// number and asks them to confirm the vehicle on file, or to state their
// number when there is none. Silence past the gather timeout falls through
// to an apology and hangup.
func (f *Flow) ConfirmVehicle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	vehicle := f.lookupVehicle(ctx, r.FormValue("To"))

	text := unknownVehicleText
	if vehicle != "" {
		text = fmt.Sprintf(confirmVehicleText, vehicle)
	}

	resp := twiml.NewResponse()
	gather := twiml.NewGather(RouteServiceDue, confirmTimeout)
	f.speak(ctx, gather, text, confirmVehicleFallback)
	resp.Append(gather)

	resp.Say(noInputText, "en")
	resp.Hangup()
	writeTwiML(w, resp)
}

// ServiceDue handles POST /service. On a confirmed vehicle it reports the
// due date on file and offers rescheduling; a denial means the call reached
// the wrong person, so it apologizes and hangs up. The intent classification
// and the user lookup are independent, so they run concurrently.
func (f *Flow) ServiceDue(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	transcript := strings.ToLower(r.FormValue("SpeechResult"))
	phone := r.FormValue("To")

	var (
		affirmed bool
		vehicle  string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		affirmed = f.isAffirmative(gctx, transcript)
		return nil
	})
	g.Go(func() error {
		vehicle = f.lookupVehicle(gctx, phone)
		return nil
	})
	// Both goroutines degrade internally and never return an error.
	_ = g.Wait()

	resp := twiml.NewResponse()

	if !affirmed {
		f.speak(ctx, resp, wrongNumberText, wrongNumberFallback)
		resp.Hangup()
		writeTwiML(w, resp)
		return
	}

	text := genericDueText
	if vehicle != "" {
		record, err := f.records.GetServiceRecord(ctx, vehicle)
		if err != nil {
			log.Printf("[Flow] service record lookup failed for %s: %v", vehicle, err)
		} else if record.NextServiceDate != nil {
			text = fmt.Sprintf(dueDateText, speechDate(*record.NextServiceDate))
		}
	}

	gather := twiml.NewGather(RouteRescheduleConfirm, confirmTimeout)
	f.speak(ctx, gather, text, dueDateFallback)
	resp.Append(gather)
	writeTwiML(w, resp)
}

// RescheduleConfirm handles POST /reschedule. A yes asks for the new date;
// a no keeps the current date and moves on to the add-on offer.
func (f *Flow) RescheduleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	transcript := strings.ToLower(r.FormValue("SpeechResult"))

	resp := twiml.NewResponse()

	if f.isAffirmative(ctx, transcript) {
		gather := twiml.NewGather(RouteRescheduleDate, selectionTimeout)
		f.speak(ctx, gather, askDateText, askDateFallback)
		resp.Append(gather)
	} else {
		f.speak(ctx, resp, keepDateText, keepDateFallback)
		resp.Redirect(RouteOfferServices)
	}

	writeTwiML(w, resp)
}

// RescheduleDate handles POST /reschedule-date. It extracts a date from the
// transcript, stores it as the new due date, confirms it aloud and moves on
// to the add-on offer. Unparseable dates resolve to a default next month;
// a failed write is logged but never breaks the turn.
func (f *Flow) RescheduleDate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	transcript := r.FormValue("SpeechResult")

	extracted := "None"
	if transcript != "" {
		raw, err := f.classifier.ExtractDates(ctx, transcript)
		if err != nil {
			log.Printf("[Flow] date extraction failed: %v", err)
		} else {
			extracted = raw
		}
	}
	date := dates.Resolve(extracted)

	if vehicle := f.lookupVehicle(ctx, r.FormValue("To")); vehicle != "" {
		if err := f.records.UpsertDueDate(ctx, vehicle, date); err != nil {
			log.Printf("[Flow] failed to store due date for %s: %v", vehicle, err)
		}
	}

	resp := twiml.NewResponse()
	f.speak(ctx, resp,
		fmt.Sprintf(rescheduledText, speechDate(date)),
		fmt.Sprintf(rescheduledFallback, englishDate(date)))
	resp.Redirect(RouteOfferServices)
	writeTwiML(w, resp)
}

// OfferServices handles POST /offer-services. It reads the add-on catalog
// and gathers the caller's selection.
func (f *Flow) OfferServices(w http.ResponseWriter, r *http.Request) {
	resp := twiml.NewResponse()
	gather := twiml.NewGather(RouteHandleServices, selectionTimeout)
	f.speak(r.Context(), gather, fmt.Sprintf(offerServicesText, spokenCatalog()), offerServicesFallback)
	resp.Append(gather)
	writeTwiML(w, resp)
}

// HandleServices handles POST /handle-services, the terminal state. A
// decline confirms the regular service only; otherwise matched catalog
// entries are stored and read back. Either way the call closes with a
// thank-you and hangs up.
func (f *Flow) HandleServices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	transcript := strings.ToLower(r.FormValue("SpeechResult"))

	resp := twiml.NewResponse()

	if matchesNegative(transcript) {
		f.speak(ctx, resp, regularOnlyText, regularOnlyFallback)
		f.speak(ctx, resp, confirmCloseText, confirmCloseFallback)
		resp.Hangup()
		writeTwiML(w, resp)
		return
	}

	chosen := MatchServices(transcript)

	text := notUnderstoodText
	if len(chosen) > 0 {
		text = fmt.Sprintf(selectedText, strings.Join(chosen, ", "))
		if vehicle := f.lookupVehicle(ctx, r.FormValue("To")); vehicle != "" {
			if err := f.records.AddSelectedServices(ctx, vehicle, chosen); err != nil {
				log.Printf("[Flow] failed to store selected services for %s: %v", vehicle, err)
			}
		}
	}

	f.speak(ctx, resp, text, selectedFallback)
	f.speak(ctx, resp, finalCloseText, finalCloseFallback)
	resp.Hangup()
	writeTwiML(w, resp)
}

// isAffirmative classifies a transcript as a yes, degrading to no on empty
// input or classifier failure. A misheard yes restarts the flow on the next
// call; a failed turn does not.
func (f *Flow) isAffirmative(ctx context.Context, transcript string) bool {
	if transcript == "" {
		return false
	}
	yes, err := f.classifier.IsAffirmative(ctx, transcript)
	if err != nil {
		log.Printf("[Flow] affirmative classification failed: %v", err)
		return false
	}
	return yes
}

// lookupVehicle resolves the callee's vehicle number, returning "" when the
// number is unknown, unset or the lookup fails.
func (f *Flow) lookupVehicle(ctx context.Context, phone string) string {
	if phone == "" {
		return ""
	}
	user, err := f.records.GetUserByPhone(ctx, phone)
	if err != nil {
		log.Printf("[Flow] user lookup failed for %s: %v", phone, err)
		return ""
	}
	if user.VehicleNumber == nil || *user.VehicleNumber == "" {
		return ""
	}
	return *user.VehicleNumber
}

func writeTwiML(w http.ResponseWriter, resp *twiml.Response) {
	w.Header().Set("Content-Type", "text/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(resp.String())); err != nil {
		log.Printf("[Flow] failed to write response: %v", err)
	}
}
