package petstore

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v6"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

var (
	categoryNames = []string{"Dogs", "Cats", "Birds", "Fish", "Reptiles", "Small Animals", "Farm Animals"}
	tagNames      = []string{
		"friendly", "playful", "calm", "energetic", "loyal", "intelligent",
		"protective", "social", "independent", "gentle", "active", "cuddly",
	}
)

// Generator produces random test data. A Generator is not safe for concurrent use.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator creates a Generator. A zero seed picks a random one.
func NewGenerator(seed int64) *Generator {
	return &Generator{faker: gofakeit.New(seed)}
}

func (g *Generator) ID() int64 {
	return int64(g.faker.Number(1, 999999))
}

func (g *Generator) Name() string {
	return g.faker.PetName()
}

// SimplePet is an available pet with one photo, a category and one or two tags.
func (g *Generator) SimplePet() Pet {
	return g.PetWith(g.Name(), StatusAvailable)
}

// PetWith is SimplePet with the given name and status.
func (g *Generator) PetWith(name string, status Status) Pet {
	category := g.RandomCategory()
	return Pet{
		ID:        g.ID(),
		Category:  &category,
		Name:      name,
		PhotoURLs: []string{g.photoURL()},
		Tags:      g.RandomTags(1, 2),
		Status:    status,
	}
}

// DetailedPet is an available pet with two photos, a category and two to four tags.
func (g *Generator) DetailedPet() Pet {
	category := g.RandomCategory()
	return Pet{
		ID:        g.ID(),
		Category:  &category,
		Name:      g.Name(),
		PhotoURLs: []string{g.photoURL(), g.photoURL()},
		Tags:      g.RandomTags(2, 4),
		Status:    StatusAvailable,
	}
}

func (g *Generator) RandomCategory() Category {
	return Category{
		ID:   ldvalue.NewOptionalInt(g.faker.Number(1, 100)),
		Name: g.faker.RandomString(categoryNames),
	}
}

// RandomTags returns between min and max tags, inclusive.
func (g *Generator) RandomTags(min, max int) []Tag {
	count := g.faker.Number(min, max)
	tags := make([]Tag, 0, count)
	for i := 0; i < count; i++ {
		tags = append(tags, Tag{
			ID:   ldvalue.NewOptionalInt(g.faker.Number(1, 50+i)),
			Name: g.faker.RandomString(tagNames),
		})
	}
	return tags
}

func (g *Generator) photoURL() string {
	return fmt.Sprintf("https://picsum.photos/id/%d/%d/%d",
		g.faker.Number(1, 1000), g.faker.Number(200, 800), g.faker.Number(200, 800))
}

// NonExistentID returns an ID far above the range used by ID.
func (g *Generator) NonExistentID() int64 {
	return int64(g.faker.Number(900_000_000, 999_999_999))
}

func (g *Generator) NegativeID() int64 {
	return -int64(g.faker.Number(1, 999999))
}

// InvalidIDString returns an ID that is not a number.
func (g *Generator) InvalidIDString() string {
	return "abc" + g.faker.Lexify("????")
}

func (g *Generator) InvalidStatus() Status {
	return Status("invalid_" + g.faker.Word())
}

// InvalidJSON returns a body that is not JSON at all.
func (g *Generator) InvalidJSON() string {
	return fmt.Sprintf("%s-%s-invalid", g.faker.Word(), g.faker.DigitN(5))
}

// InvalidTypesBody has a string ID and a numeric status.
func (g *Generator) InvalidTypesBody() string {
	return ldvalue.ObjectBuild().
		Set("id", ldvalue.String("should-be-a-number")).
		Set("name", ldvalue.String(g.faker.Animal())).
		Set("status", ldvalue.Int(123)).
		Build().JSONString()
}

// InvalidUpdateTypesBody has a string ID, a numeric name and a numeric status.
func (g *Generator) InvalidUpdateTypesBody() string {
	return ldvalue.ObjectBuild().
		Set("id", ldvalue.String("invalid-id-as-string")).
		Set("name", ldvalue.Int(g.faker.Number(1, 1_000_000))).
		Set("status", ldvalue.Int(123)).
		Build().JSONString()
}

// MissingIDBody is a pet without an ID.
func (g *Generator) MissingIDBody() string {
	return ldvalue.ObjectBuild().
		Set("name", ldvalue.String(g.faker.Animal())).
		Set("status", ldvalue.String(string(StatusAvailable))).
		Build().JSONString()
}

// EmptyBody is a JSON object without any field.
const EmptyBody = "{}"
