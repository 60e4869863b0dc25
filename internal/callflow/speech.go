package callflow

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sarthi-tvs/callagent/internal/services"
)

// Primary prompts are Hinglish; each carries an English fallback spoken by
// the telephony provider's built-in voice when synthesis is unavailable.
const (
	greetingText     = "Namaste! Main Sarthi TVS ki AI agent bol rahi hoon. Aapki Bike service ke liye call kar rahi hoon."
	greetingFallback = "Hello! I am calling regarding your Bike service."

	confirmVehicleText     = "Kya aapki Bike ka number %s hai? Kripya haan ya na mein jawab dein."
	unknownVehicleText     = "Hum aapki Bike ka number confirm nahi kar pa rahe. Kya aap apna Bike number bata sakte hain?"
	confirmVehicleFallback = "Please confirm your Bike number"

	// Spoken by the built-in voice when the confirm gather times out.
	noInputText = "Sorry, I didn't get your response. Please call back later."

	dueDateText     = "Aapki Bike service ki due date %s hai. Kya aap ye date reschedule karna chahte hai?"
	genericDueText  = "Aapki Bike service next month due hai. Kya aap reschedule karna chahte hai?"
	dueDateFallback = "Would you like to reschedule your service?"

	wrongNumberText     = "Samjha. Shayad galat number par call aaya hai. Maaf kijiye. Aapka din mangalmay ho!"
	wrongNumberFallback = "Sorry for the inconvenience. Have a good day!"

	askDateText     = "Bahut achha! Aap konse din service reschedule karna chahte hai? Kripya date bataiye."
	askDateFallback = "Which date would you like to reschedule to?"

	keepDateText     = "Theek hai, current date par hi service hogi. Kya aap koi additional services chahte hai?"
	keepDateFallback = "Alright, service will remain on the current date."

	rescheduledText     = "Perfect! Aapki Bike service %s ko reschedule kar di gayi hai."
	rescheduledFallback = "Your service has been rescheduled to %s"

	offerServicesText     = "Hamare paas kuch additional services bhi available hai jaise: %s. Kya aap koi additional service chahte hai? Service ka naam boliye ya 'nahi' kahiye."
	offerServicesFallback = "Would you like any additional services?"

	regularOnlyText     = "Theek hai, sirf regular service hi hogi. Dhanyawad!"
	regularOnlyFallback = "Alright, only regular service then. Thank you!"

	confirmCloseText     = "Aapka service appointment confirm ho gaya hai. Sarthi TVS ko choose karne ke liye dhanyawad!"
	confirmCloseFallback = "Your service appointment is confirmed. Thank you for choosing us!"

	selectedText      = "Bahut badhiya! Aapne ye services select ki hai: %s. Ye sab services add kar di gayi hai."
	notUnderstoodText = "Maaf kijiye, main aapki service selection samajh nahi payi. Sirf regular service confirm kar di gayi hai."
	selectedFallback  = "Your selected services have been added."

	finalCloseText     = "Aapka service appointment complete confirm ho gaya hai. Sarthi TVS choose karne ke liye bahut bahut dhanyawad! Aapka din shubh ho!"
	finalCloseFallback = "Your appointment is confirmed. Thank you and have a great day!"
)

// prompter is where a spoken prompt lands: either the response itself or a
// gather nested inside it.
type prompter interface {
	Play(audioURL string)
	Say(text, language string)
}

// speak synthesizes text and plays the cached artifact. Failed language
// detection degrades to the default voice; failed synthesis falls back to
// the provider's built-in voice so the turn still completes.
func (f *Flow) speak(ctx context.Context, p prompter, text, fallback string) {
	lang, err := f.classifier.DetectLanguage(ctx, text)
	if err != nil || lang == "" {
		if err != nil {
			log.Printf("[Flow] language detection failed: %v", err)
		}
		lang = services.DefaultLanguageCode
	}

	ref, err := f.speech.Synthesize(ctx, text, services.VoiceFor(lang))
	if err != nil {
		log.Printf("[Flow] synthesis failed, using built-in voice: %v", err)
		if fallback == "" {
			fallback = text
		}
		p.Say(fallback, services.DefaultLanguageCode)
		return
	}

	p.Play(ref)
}

var hindiMonths = [...]string{
	"जनवरी", "फरवरी", "मार्च", "अप्रैल", "मई", "जून",
	"जुलाई", "अगस्त", "सितंबर", "अक्टूबर", "नवंबर", "दिसंबर",
}

// speechDate renders a date the way the Hindi prompts speak it.
func speechDate(d time.Time) string {
	return fmt.Sprintf("%d %s %d", d.Day(), hindiMonths[d.Month()-1], d.Year())
}

// englishDate renders a date for the English fallback prompts.
func englishDate(d time.Time) string {
	return d.Format("January 2, 2006")
}
