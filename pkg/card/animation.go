package card

import (
	"fmt"
	"strings"

	"github.com/matzehuels/statcard/pkg/svg"
)

// AnimationKind names an entrance or looping animation.
type AnimationKind string

const (
	AnimFadeIn       AnimationKind = "fadeIn"
	AnimWave         AnimationKind = "wave"
	AnimScaleIn      AnimationKind = "scaleIn"
	AnimGlow         AnimationKind = "glow"
	AnimBlink        AnimationKind = "blink"
	AnimTyping       AnimationKind = "typing"
	AnimSlideInLeft  AnimationKind = "slideInLeft"
	AnimSlideInRight AnimationKind = "slideInRight"
	AnimSlideInUp    AnimationKind = "slideInUp"
	AnimBounce       AnimationKind = "bounce"
	AnimNone         AnimationKind = "none"
)

// Speed scales animation durations and delays.
type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedNormal Speed = "normal"
	SpeedFast   Speed = "fast"
)

// Multiplier returns the duration factor: 2 for slow, 0.5 for fast, 1 otherwise.
func (s Speed) Multiplier() float64 {
	switch s {
	case SpeedSlow:
		return 2
	case SpeedFast:
		return 0.5
	default:
		return 1
	}
}

// ParseSpeed maps s to a Speed; unknown values map to SpeedNormal.
func ParseSpeed(s string) Speed {
	switch sp := Speed(s); sp {
	case SpeedSlow, SpeedNormal, SpeedFast:
		return sp
	}
	return SpeedNormal
}

type keyframes struct {
	frames   string
	duration float64
	timing   string
	fill     string
	hidden   bool
	box      bool
}

// $accent in frames is replaced by the accent color.
var animations = map[AnimationKind]keyframes{
	AnimFadeIn: {
		frames:   "from { opacity: 0; } to { opacity: 1; }",
		duration: 0.8, timing: "ease-out", fill: "forwards", hidden: true,
	},
	AnimWave: {
		frames:   "0% { opacity: 0; transform: translateY(0); } 50% { opacity: 1; transform: translateY(-4px); } 100% { opacity: 1; transform: translateY(0); }",
		duration: 1.2, timing: "ease-in-out", fill: "forwards", hidden: true,
	},
	AnimScaleIn: {
		frames:   "from { opacity: 0; transform: scale(0.8); } to { opacity: 1; transform: scale(1); }",
		duration: 0.6, timing: "ease-out", fill: "forwards", hidden: true, box: true,
	},
	AnimGlow: {
		frames:   "from { filter: drop-shadow(0 0 1px $accent); } to { filter: drop-shadow(0 0 6px $accent); }",
		duration: 2, timing: "ease-in-out", fill: "infinite alternate",
	},
	AnimBlink: {
		frames:   "0%, 100% { opacity: 1; } 50% { opacity: 0.2; }",
		duration: 1, timing: "steps(1, end)", fill: "infinite",
	},
	AnimTyping: {
		frames:   "from { clip-path: inset(0 100% 0 0); } to { clip-path: inset(0 0 0 0); }",
		duration: 1.5, timing: "steps(30, end)", fill: "both",
	},
	AnimSlideInLeft: {
		frames:   "from { opacity: 0; transform: translateX(-30px); } to { opacity: 1; transform: translateX(0); }",
		duration: 0.7, timing: "ease-out", fill: "forwards", hidden: true,
	},
	AnimSlideInRight: {
		frames:   "from { opacity: 0; transform: translateX(30px); } to { opacity: 1; transform: translateX(0); }",
		duration: 0.7, timing: "ease-out", fill: "forwards", hidden: true,
	},
	AnimSlideInUp: {
		frames:   "from { opacity: 0; transform: translateY(20px); } to { opacity: 1; transform: translateY(0); }",
		duration: 0.7, timing: "ease-out", fill: "forwards", hidden: true,
	},
	AnimBounce: {
		frames:   "0% { opacity: 0; transform: translateY(-20px); } 60% { opacity: 1; transform: translateY(5px); } 80% { transform: translateY(-2px); } 100% { opacity: 1; transform: translateY(0); }",
		duration: 1, timing: "ease-out", fill: "forwards", hidden: true,
	},
}

// ParseAnimationKind maps s to an AnimationKind; unknown values map to AnimFadeIn.
func ParseAnimationKind(s string) AnimationKind {
	k := AnimationKind(s)
	if _, ok := animations[k]; ok || k == AnimNone {
		return k
	}
	return AnimFadeIn
}

// DelaySteps is the number of .dN stagger classes emitted.
const DelaySteps = 5

// AnimationCSS returns the stylesheet for kind at speed: one @keyframes rule,
// the .anim class and the .d1 to .d5 delay classes. AnimNone yields a static
// .anim class and no keyframes.
func AnimationCSS(kind AnimationKind, speed Speed, accent string) string {
	mult := speed.Multiplier()
	var b strings.Builder

	kf, ok := animations[kind]
	if !ok {
		b.WriteString(".anim { }\n")
	} else {
		fmt.Fprintf(&b, "@keyframes %s { %s }\n", kind, strings.ReplaceAll(kf.frames, "$accent", accent))
		b.WriteString(".anim { ")
		if kf.hidden {
			b.WriteString("opacity: 0; ")
		}
		if kf.box {
			b.WriteString("transform-box: fill-box; transform-origin: center; ")
		}
		fmt.Fprintf(&b, "animation: %s %s %s %s; }\n", kind, seconds(kf.duration*mult), kf.timing, kf.fill)
	}

	for i := 1; i <= DelaySteps; i++ {
		fmt.Fprintf(&b, ".d%d { animation-delay: %s; }\n", i, seconds(0.1*float64(i)*mult))
	}
	return b.String()
}

func seconds(v float64) string { return svg.FormatFloat(v) + "s" }

// delayClass returns the stagger class for position i (1-based), clamped to .d5.
func delayClass(i int) string {
	return fmt.Sprintf("d%d", min(max(i, 1), DelaySteps))
}
