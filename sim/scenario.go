package sim

import (
	"fmt"
	"os"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/gravctl/controller"
	"github.com/oomph-ac/gravctl/game"
	"github.com/oomph-ac/gravctl/gravity"
	"github.com/oomph-ac/gravctl/oerror"
	"github.com/oomph-ac/gravctl/world"
	"gopkg.in/yaml.v3"
)

// Scenario describes the gravity sources, colliders, platforms and agents of a simulation.
type Scenario struct {
	Name      string             `yaml:"name"`
	Gravity   GravityScenario    `yaml:"gravity"`
	Platforms []PlatformScenario `yaml:"platforms"`
	Colliders []ColliderScenario `yaml:"colliders"`
	Agents    []AgentScenario    `yaml:"agents"`
}

// GravityScenario lists the gravity sources of a scenario. Fallback is used where no source
// applies; it defaults to earth gravity.
type GravityScenario struct {
	Fallback *mgl32.Vec3      `yaml:"fallback"`
	Spheres  []SphereScenario `yaml:"spheres"`
	Boxes    []BoxScenario    `yaml:"boxes"`
	Planes   []PlaneScenario  `yaml:"planes"`
}

// TransformScenario is a position and a rotation in euler angles in degrees.
type TransformScenario struct {
	Position mgl32.Vec3 `yaml:"position"`
	Rotation mgl32.Vec3 `yaml:"rotation"`
}

func (t TransformScenario) transform() game.Transform {
	r := t.Rotation
	return game.Transform{
		Position: t.Position,
		Rotation: mgl32.AnglesToQuat(mgl32.DegToRad(r.X()), mgl32.DegToRad(r.Y()), mgl32.DegToRad(r.Z()), mgl32.XYZ),
	}
}

type SphereScenario struct {
	Position           mgl32.Vec3 `yaml:"position"`
	Gravity            float32    `yaml:"gravity"`
	InnerFalloffRadius float32    `yaml:"inner_falloff_radius"`
	InnerRadius        float32    `yaml:"inner_radius"`
	OuterRadius        float32    `yaml:"outer_radius"`
	OuterFalloffRadius float32    `yaml:"outer_falloff_radius"`
}

type BoxScenario struct {
	TransformScenario    `yaml:",inline"`
	Gravity              float32    `yaml:"gravity"`
	Boundary             mgl32.Vec3 `yaml:"boundary"`
	InnerDistance        float32    `yaml:"inner_distance"`
	InnerFalloffDistance float32    `yaml:"inner_falloff_distance"`
	OuterDistance        float32    `yaml:"outer_distance"`
	OuterFalloffDistance float32    `yaml:"outer_falloff_distance"`
}

type PlaneScenario struct {
	TransformScenario `yaml:",inline"`
	Gravity           float32    `yaml:"gravity"`
	Size              mgl32.Vec2 `yaml:"size"`
	Reach             float32    `yaml:"reach"`
}

// PlatformScenario is a platform colliders can be attached to by name.
type PlatformScenario struct {
	TransformScenario `yaml:",inline"`
	Name              string       `yaml:"name"`
	Waypoints         []mgl32.Vec3 `yaml:"waypoints"`
	Speed             float32      `yaml:"speed"`
	// Angular is the angular velocity in degrees per second.
	Angular mgl32.Vec3 `yaml:"angular"`
	// Mass makes the platform dynamic if it is positive.
	Mass float32 `yaml:"mass"`
}

type ColliderScenario struct {
	Min      mgl32.Vec3 `yaml:"min"`
	Max      mgl32.Vec3 `yaml:"max"`
	Layer    string     `yaml:"layer"`
	Trigger  bool       `yaml:"trigger"`
	Platform string     `yaml:"platform"`
}

// AgentScenario is a controller, its body and the input it receives.
type AgentScenario struct {
	Name     string      `yaml:"name"`
	Position mgl32.Vec3  `yaml:"position"`
	Radius   float32     `yaml:"radius"`
	Mass     float32     `yaml:"mass"`
	Mode     string      `yaml:"mode"`
	Script   []InputStep `yaml:"script"`
}

// InputStep is the input an agent receives for a number of steps.
type InputStep struct {
	Steps    int        `yaml:"steps"`
	Move     mgl32.Vec2 `yaml:"move"`
	Vertical float32    `yaml:"vertical"`
	Jump     bool       `yaml:"jump"`
	Climb    bool       `yaml:"climb"`
}

// LoadScenario reads a scenario from the YAML file at the path passed.
func LoadScenario(path string) (Scenario, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return DecodeScenario(dat)
}

// DecodeScenario decodes a scenario from YAML.
func DecodeScenario(dat []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(dat, &sc); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	if len(sc.Agents) == 0 {
		return Scenario{}, oerror.New("scenario %q has no agents", sc.Name)
	}
	return sc, nil
}

// Build creates the gravity field and the world of the scenario.
func (sc Scenario) Build() (*gravity.Field, *world.World, error) {
	field := gravity.NewField()
	if sc.Gravity.Fallback != nil {
		field.SetFallback(gravity.NewUniform(*sc.Gravity.Fallback))
	} else {
		field.SetFallback(gravity.DefaultUniform())
	}
	for _, s := range sc.Gravity.Spheres {
		field.Register(gravity.NewSphere(gravity.SphereConfig{
			Position:           s.Position,
			Gravity:            s.Gravity,
			InnerFalloffRadius: s.InnerFalloffRadius,
			InnerRadius:        s.InnerRadius,
			OuterRadius:        s.OuterRadius,
			OuterFalloffRadius: s.OuterFalloffRadius,
		}))
	}
	for _, b := range sc.Gravity.Boxes {
		field.Register(gravity.NewBox(gravity.BoxConfig{
			Transform:            b.transform(),
			Gravity:              b.Gravity,
			Boundary:             b.Boundary,
			InnerDistance:        b.InnerDistance,
			InnerFalloffDistance: b.InnerFalloffDistance,
			OuterDistance:        b.OuterDistance,
			OuterFalloffDistance: b.OuterFalloffDistance,
		}))
	}
	for _, p := range sc.Gravity.Planes {
		field.Register(gravity.NewPlane(gravity.PlaneConfig{
			Transform: p.transform(),
			Gravity:   p.Gravity,
			Size:      p.Size,
			Reach:     p.Reach,
		}))
	}

	w := world.New()
	platforms := make(map[string]*world.Platform, len(sc.Platforms))
	for _, ps := range sc.Platforms {
		if _, ok := platforms[ps.Name]; ok {
			return nil, nil, oerror.New("duplicate platform %q", ps.Name)
		}
		var p *world.Platform
		if ps.Mass > 0 {
			p = world.NewDynamicPlatform(ps.transform(), ps.Mass)
		} else {
			p = world.NewPlatform(ps.transform())
		}
		p.Waypoints, p.Speed = ps.Waypoints, ps.Speed
		p.Angular = mgl32.Vec3{mgl32.DegToRad(ps.Angular.X()), mgl32.DegToRad(ps.Angular.Y()), mgl32.DegToRad(ps.Angular.Z())}
		platforms[ps.Name] = p
		w.AddPlatform(p)
	}
	for i, cs := range sc.Colliders {
		layer := game.LayerDefault
		if cs.Layer != "" {
			l, ok := game.ParseLayer(cs.Layer)
			if !ok {
				return nil, nil, oerror.New("collider %d: unknown layer %q", i, cs.Layer)
			}
			layer = l
		}
		c := &world.Collider{
			Box:     cube.Box(cs.Min.X(), cs.Min.Y(), cs.Min.Z(), cs.Max.X(), cs.Max.Y(), cs.Max.Z()),
			Layer:   layer,
			Trigger: cs.Trigger,
		}
		if cs.Platform != "" {
			p, ok := platforms[cs.Platform]
			if !ok {
				return nil, nil, oerror.New("collider %d: unknown platform %q", i, cs.Platform)
			}
			c.Platform = p
		}
		w.AddCollider(c)
	}
	return field, w, nil
}

// mode returns the initial mode of the agent.
func (a AgentScenario) mode() (controller.Mode, error) {
	if a.Mode == "" {
		return controller.ModeGrounded, nil
	}
	m, ok := controller.ParseMode(a.Mode)
	if !ok {
		return 0, oerror.New("agent %q: unknown mode %q", a.Name, a.Mode)
	}
	return m, nil
}
