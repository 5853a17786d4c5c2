package rules

import "github.com/soteria-labs/soteria/pkg/engine"

// =============================================================================
// RULE DEFINITIONS BY HARM CATEGORY
// All builtin rules are registered here and compiled once at load.
// Weights are per-hit contributions; the pattern detector applies diminishing
// returns for repeated hits in the same category.
// =============================================================================

// --- HATE SPEECH ---
func (r *Registry) registerHateSpeechRules() {
	cat := engine.CategoryHateSpeech

	r.register("directed_hate", `(?i)\b(hate|despise|loathe|detest)\s+(you|them|those|these)\b`, cat, 0.60, "Direct expression of hatred at a person or group")
	r.register("group_slur_frame", `(?i)\b(all|every|those)\s+\w+\s+(are|is)\s+(subhuman|vermin|scum|animals|trash|garbage)\b`, cat, 0.85, "Dehumanizing generalization about a group")
	r.register("identity_attack", `(?i)\b(stupid|disgusting|worthless|inferior)\s+(people|person|race|women|men|foreigners|immigrants)\b`, cat, 0.70, "Degrading language tied to identity")
	r.register("exclusion_demand", `(?i)\b(go\s+back\s+to|don'?t\s+belong\s+(here|in))\b`, cat, 0.65, "Exclusionary demand aimed at a group")
	r.register("supremacy_claim", `(?i)\b(superior|master)\s+(race|gender|people)\b`, cat, 0.80, "Supremacist framing")
}

// --- HARASSMENT ---
func (r *Registry) registerHarassmentRules() {
	cat := engine.CategoryHarassment

	r.register("violent_threat", `(?i)\b(going\s+to|gonna|will|about\s+to)\s+(kill|hurt|harm|beat|destroy|end)\s+(you|him|her|them)\b`, cat, 0.90, "Explicit threat of violence")
	r.register("intimidation", `(?i)\b(watch\s+out|watch\s+your\s+back|you\s+better\s+(watch|be\s+careful))\b`, cat, 0.65, "Intimidating warning")
	r.register("or_else", `(?i)\bor\s+else\b`, cat, 0.45, "Open-ended threat")
	r.register("personal_insult", `(?i)\byou\s+(are|'re)\s+(a\s+)?(stupid|pathetic|worthless|disgusting|an?\s+idiot|a\s+moron|a\s+loser)\b`, cat, 0.55, "Direct personal insult")
	r.register("doxxing_threat", `(?i)\b(find\s+(out\s+)?where\s+you\s+live|post\s+your\s+(address|photos?)|leak\s+your)\b`, cat, 0.85, "Threat to expose personal information")
	r.register("pile_on", `(?i)\b(everyone|everybody)\s+(hates|laughs\s+at|is\s+against)\s+you\b`, cat, 0.60, "Coordinated-rejection framing")
	r.register("demeaning_command", `(?i)\b(shut\s+up|nobody\s+(cares|asked))\b`, cat, 0.40, "Dismissive demeaning phrase")
}

// --- SELF-HARM ---
func (r *Registry) registerSelfHarmRules() {
	cat := engine.CategorySelfHarm

	r.register("self_harm_incitement", `(?i)\b(kill|hurt|harm)\s+(yourself|yourselves)\b`, cat, 0.95, "Incitement to self-harm")
	r.register("disappear_demand", `(?i)\b(you|they)\s+should\s+(disappear|not\s+exist|never\s+have\s+been\s+born)\b`, cat, 0.80, "Demand that a person cease to exist")
	r.register("kys_abbrev", `(?i)\bkys\b`, cat, 0.95, "Abbreviated self-harm incitement")
	r.register("better_off_without", `(?i)\b(world|everyone)\s+(would\s+be|is)\s+better\s+(off\s+)?without\s+you\b`, cat, 0.90, "Worthlessness framing aimed at a person")
	r.register("self_harm_ideation", `(?i)\b(want\s+to|going\s+to|thinking\s+about)\s+(die|end\s+it(\s+all)?|kill\s+myself|hurt\s+myself)\b`, cat, 0.85, "Expression of self-harm ideation")
	r.register("no_reason_to_live", `(?i)\bno\s+(reason|point)\s+(to\s+(live|go\s+on)|in\s+living)\b`, cat, 0.80, "Hopelessness expression")
}

// --- MISINFORMATION ---
func (r *Registry) registerMisinformationRules() {
	cat := engine.CategoryMisinformation

	r.register("miracle_cure", `(?i)\b(cures?|heals?)\s+(cancer|diabetes|covid|aids|all\s+diseases?)\b`, cat, 0.70, "Unverified medical cure claim")
	r.register("vaccine_conspiracy", `(?i)\bvaccines?\s+(cause|contain)\s+(autism|microchips?|poison)\b`, cat, 0.80, "Debunked vaccine claim")
	r.register("suppressed_truth", `(?i)\b(they|government|media|big\s+pharma)\s+(don'?t\s+want\s+you\s+to\s+know|are\s+hiding\s+the\s+truth)\b`, cat, 0.60, "Suppressed-truth conspiracy framing")
	r.register("hoax_claim", `(?i)\b(is|was)\s+(a|an)\s+(hoax|false\s+flag|psyop)\b`, cat, 0.65, "Hoax assertion about events")
	r.register("doctors_hate", `(?i)\b(doctors|scientists|experts)\s+(hate|don'?t\s+want)\s+(this|you\s+to)\b`, cat, 0.55, "Clickbait anti-expert framing")
}

// --- SPAM ---
func (r *Registry) registerSpamRules() {
	cat := engine.CategorySpam

	r.register("get_rich_quick", `(?i)\b(make|earn)\s+\$?\d+[,\d]*\s*(dollars?|usd|\$)?\s*(a|per|\/)\s*(day|week|hour)\b`, cat, 0.70, "Get-rich-quick earnings claim")
	r.register("click_here", `(?i)\b(click|tap)\s+(here|this\s+link|the\s+link\s+below)\b`, cat, 0.50, "Link-bait call to action")
	r.register("limited_offer", `(?i)\b(limited\s+time|act\s+now|don'?t\s+miss\s+out|hurry|while\s+supplies\s+last)\b`, cat, 0.50, "Urgency-pressure marketing")
	r.register("free_prize", `(?i)\b(congratulations|you\s+(have\s+)?won|claim\s+your)\b.{0,40}\b(prize|gift|reward|iphone|gift\s*card)\b`, cat, 0.80, "Prize-scam framing")
	r.register("crypto_pump", `(?i)\b(guaranteed|100%)\s+(returns?|profits?)\b`, cat, 0.70, "Guaranteed-returns investment pitch")
	r.register("dm_me", `(?i)\b(dm|message|whatsapp|telegram)\s+me\s+(now|today|to\s+(start|earn|learn))\b`, cat, 0.55, "Off-platform contact solicitation")
}
