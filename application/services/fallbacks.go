package services

import (
	"fmt"
	"strings"

	"conceptcraft-backend/domain/content"
)

// Canned content served when the model providers are unavailable or
// return output that cannot be parsed. Tables are keyed by lower-cased
// framework name; unknown frameworks fall through to generic templates
// parameterized by concept and framework name.

var cannedMetaphors = map[string]string{
	"react": "Think of React components as LEGO bricks: each one is a small, self-contained piece " +
		"with a predictable shape, and you snap them together to build structures of any size " +
		"without ever changing the bricks themselves.",
	"angular": "Angular is like a fully staffed restaurant kitchen: every station has a defined role, " +
		"ingredients are delivered exactly where they are needed through dependency injection, " +
		"and the head chef's recipe book keeps every dish consistent.",
	"vue": "Vue is like a thermostat for your data: you set the desired state once, and the system " +
		"continuously watches for changes and adjusts the view automatically, without you " +
		"wiring up every sensor by hand.",
	"svelte": "Svelte is like a tailor who finishes all the fitting work before you leave the shop: " +
		"instead of adjusting the suit every time you wear it, the work happens once at compile " +
		"time and the result simply fits.",
	"express": "Express is like an airport security line: every request passes through a sequence of " +
		"checkpoints in order, each checkpoint inspects or stamps the request, and any one of " +
		"them can wave it through or turn it away.",
}

// cannedStories holds per-framework interactive story templates. The
// Angular and React entries are the most commonly served and are kept
// stable because the admin UI screenshots reference them.
var cannedStories = map[string]content.Story{
	"react": {
		Title:    "The Component Workshop",
		Scene:    "A busy toy workshop where every toy is assembled from standard interchangeable parts.",
		Problem:  "Custom one-off toys take forever to build and break in unpredictable ways.",
		Solution: "The workshop switches to a catalog of reusable parts that snap together the same way every time.",
		Characters: map[string]string{
			"Mara the Builder":   "assembles toys from catalog parts",
			"Otto the Inspector": "checks that each part behaves the same everywhere",
		},
		Mapping: map[string]string{
			"catalog part":   "component",
			"assembly plan":  "JSX tree",
			"part order slip": "props",
		},
		RealWorld: "Design systems at large companies ship hundreds of screens from one shared component library.",
	},
	"angular": {
		Title:    "The Clockwork City",
		Scene:    "A city where every service, from water to mail, runs on interlocking clockwork published on a central registry.",
		Problem:  "Workshops keep hand-building their own gears, so nothing fits together and repairs take weeks.",
		Solution: "The city council standardizes gear profiles and delivers certified gears to any workshop that declares what it needs.",
		Characters: map[string]string{
			"Ada the Registrar": "keeps the registry of certified gear providers",
			"Brooks the Fitter": "declares needed gears instead of forging them",
		},
		Mapping: map[string]string{
			"certified gear": "injectable service",
			"registry":       "dependency injection container",
			"gear profile":   "TypeScript interface",
		},
		RealWorld: "Enterprise teams rely on Angular's dependency injection to swap real services for test doubles.",
	},
	"vue": {
		Title:    "The Greenhouse Keeper",
		Scene:    "An automated greenhouse where sensors watch soil, light, and humidity around the clock.",
		Problem:  "The keeper used to walk every row adjusting valves by hand, always a step behind the weather.",
		Solution: "Each plant bed declares its ideal conditions once, and the greenhouse reacts to every change on its own.",
		Characters: map[string]string{
			"June the Keeper":    "declares desired conditions",
			"The Sensor Network": "detects changes and triggers adjustments",
		},
		Mapping: map[string]string{
			"declared conditions": "reactive state",
			"sensor network":      "reactivity system",
			"valve adjustment":    "DOM update",
		},
		RealWorld: "Dashboards update charts the instant underlying data changes, with no manual refresh logic.",
	},
}

var cannedPopularConcepts = map[string][]string{
	"react": {
		"Hooks", "Server Components", "Suspense", "Context API",
		"Concurrent Rendering", "Custom Hooks", "Error Boundaries",
	},
	"angular": {
		"Signals", "Standalone Components", "Dependency Injection",
		"RxJS Observables", "Change Detection", "Angular Universal",
	},
	"vue": {
		"Composition API", "Reactivity System", "Single File Components",
		"Pinia State Management", "Teleport", "Computed Properties",
	},
	"svelte": {
		"Runes", "Stores", "Compile-Time Reactivity", "Transitions",
		"SvelteKit Routing",
	},
	"express": {
		"Middleware Chains", "Router Composition", "Error Handling Middleware",
		"Request Validation", "Session Management",
	},
}

// fallbackMetaphor returns the canned metaphor for a framework, or a
// generic templated sentence when the framework is unrecognized.
func fallbackMetaphor(conceptName, frameworkName string) string {
	if m, ok := cannedMetaphors[strings.ToLower(frameworkName)]; ok {
		return m
	}
	return fmt.Sprintf("Think of %s as a specialized tool in the %s toolbox: it does one job well, "+
		"and once you understand its shape, you will reach for it without thinking.", conceptName, frameworkName)
}

// fallbackStory returns the canned story for a framework, or a generic
// workshop-themed template parameterized by concept and framework name.
func fallbackStory(conceptName, frameworkName string) content.Story {
	if s, ok := cannedStories[strings.ToLower(frameworkName)]; ok {
		return s
	}
	return content.Story{
		Title:    fmt.Sprintf("The %s Workshop", conceptName),
		Scene:    fmt.Sprintf("A workshop where a team builds applications with %s.", frameworkName),
		Problem:  "The team keeps solving the same problem by hand, and every solution looks different.",
		Solution: fmt.Sprintf("They adopt %s, a shared technique everyone applies the same way.", conceptName),
		Characters: map[string]string{
			"The Apprentice": "learns the technique step by step",
			"The Mentor":     "shows where the technique fits",
		},
		Mapping: map[string]string{
			"shared technique": conceptName,
			"workshop":         frameworkName,
		},
		RealWorld: fmt.Sprintf("Teams using %s rely on %s in production every day.", frameworkName, conceptName),
	}
}

// fallbackDescription is used when the structured description request
// fails or its response cannot be parsed.
func fallbackDescription(conceptName, frameworkName string) string {
	return fmt.Sprintf("%s is a core concept in %s that helps developers structure their applications "+
		"in a clear and maintainable way.", conceptName, frameworkName)
}

// fallbackPopularConcepts returns the hand-maintained trending list for a
// framework. Unrecognized frameworks get an empty list, not an error.
func fallbackPopularConcepts(frameworkName string) []string {
	if list, ok := cannedPopularConcepts[strings.ToLower(frameworkName)]; ok {
		out := make([]string, len(list))
		copy(out, list)
		return out
	}
	return []string{}
}
