package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"inventra/internal/apperr"
	"inventra/internal/llm"
	"inventra/internal/memory"
	"inventra/internal/models"
	"inventra/internal/services/product"
)

// fakeGen answers classification prompts with classify and everything else
// with answer.
type fakeGen struct {
	mu          sync.Mutex
	classify    string
	classifyErr error
	answer      string
	answerErr   error
	prompts     []string
}

func (f *fakeGen) Generate(_ context.Context, prompt string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	if strings.Contains(prompt, "just YES or NO") {
		return f.classify, f.classifyErr
	}
	return f.answer, f.answerErr
}

func (f *fakeGen) classifications() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.prompts {
		if strings.Contains(p, "just YES or NO") {
			n++
		}
	}
	return n
}

func (f *fakeGen) last() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prompts[len(f.prompts)-1]
}

type fakeLister struct {
	products []models.Product
	err      error
	owner    string
}

func (f *fakeLister) List(_ context.Context, ownerID string, _ product.Filter) ([]models.Product, error) {
	f.owner = ownerID
	return f.products, f.err
}

func newResponder(gen llm.Generator, lister ProductLister) (*Responder, *memory.Store) {
	mem := memory.NewStore(memory.DefaultWindow)
	return NewResponder(lister, mem, gen, zap.NewNop().Sugar()), mem
}

func widget() models.Product {
	return models.Product{Name: "Widget", Category: models.CategoryElectronics, Quantity: 10, UnitPrice: 2.5, IsActive: true}
}

func TestAsk_ConversationFollowUp(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGen{classify: "yes", answer: "  You have 10 Widgets!  "}
	lister := &fakeLister{products: []models.Product{widget()}}
	r, mem := newResponder(gen, lister)

	got, err := r.Ask(ctx, "u1", "What do I have?")
	require.NoError(t, err)
	assert.Equal(t, "You have 10 Widgets!", got)
	assert.Equal(t, "u1", lister.owner)
	assert.Equal(t, 1, gen.classifications())
	assert.Contains(t, gen.last(), "- Widget: No description (Category: electronics, Quantity: 10, Price: $2.5, Active: Yes)")
	assert.Contains(t, gen.last(), "Current User Question: What do I have?")

	gen.answer = "Widgets cost $2.5 each."
	_, err = r.Ask(ctx, "u1", "What about the price?")
	require.NoError(t, err)
	assert.Equal(t, 1, gen.classifications(), "follow-up skips classification")
	assert.Contains(t, gen.last(), "User: What do I have?\nBot: You have 10 Widgets!")

	h := mem.History("u1")
	require.Len(t, h, 2)
	assert.Equal(t, memory.Exchange{User: "What about the price?", Bot: "Widgets cost $2.5 each."}, h[1])
}

func TestAsk_RefusalIsRecordedAndReclassified(t *testing.T) {
	ctx := context.Background()
	gen := &fakeGen{classify: "NO"}
	r, mem := newResponder(gen, &fakeLister{})

	got, err := r.Ask(ctx, "u1", "What's the weather?")
	require.NoError(t, err)
	assert.Equal(t, Refusal, got)
	require.Len(t, mem.History("u1"), 1)
	assert.Equal(t, Refusal, mem.History("u1")[0].Bot)

	_, err = r.Ask(ctx, "u1", "Tell me a joke")
	require.NoError(t, err)
	assert.Equal(t, 2, gen.classifications(), "a refusal is not follow-up context")
	assert.Contains(t, gen.last(), "User: What's the weather?")
}

func TestAsk_ClassifierOnlyExactYes(t *testing.T) {
	for _, out := range []string{"NO", "Yes, it is", "maybe", ""} {
		gen := &fakeGen{classify: out, answer: "should not be used"}
		r, _ := newResponder(gen, &fakeLister{})
		got, err := r.Ask(context.Background(), "u1", "hmm")
		require.NoError(t, err)
		assert.Equal(t, Refusal, got, out)
	}
}

func TestAsk_GateFailsOpen(t *testing.T) {
	gen := &fakeGen{classifyErr: errors.New("timeout"), answer: "You have nothing yet."}
	r, _ := newResponder(gen, &fakeLister{})

	got, err := r.Ask(context.Background(), "u1", "How many items?")
	require.NoError(t, err)
	assert.Equal(t, "You have nothing yet.", got)
	assert.Contains(t, gen.last(), emptyInventory)
}

func TestAsk_Validation(t *testing.T) {
	r, _ := newResponder(&fakeGen{}, &fakeLister{})
	for _, q := range []string{"", "   ", "\n\t"} {
		_, err := r.Ask(context.Background(), "u1", q)
		assert.True(t, apperr.Is(err, apperr.KindValidation))
		assert.Equal(t, apperr.MsgPromptRequired, apperr.PublicMessage(err))
	}
	_, err := r.Ask(context.Background(), "", "hello")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestAsk_GenerationErrors(t *testing.T) {
	cases := []struct {
		name string
		err  error
		kind apperr.Kind
	}{
		{"quota", fmt.Errorf("%w: 429", llm.ErrQuota), apperr.KindUnavailable},
		{"config", llm.ErrNotConfigured, apperr.KindMisconfigured},
		{"other", errors.New("socket closed"), apperr.KindInternal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gen := &fakeGen{classify: "YES", answerErr: tc.err}
			r, mem := newResponder(gen, &fakeLister{})
			_, err := r.Ask(context.Background(), "u1", "How many items?")
			require.Error(t, err)
			assert.Equal(t, tc.kind, apperr.KindOf(err))
			assert.Empty(t, mem.History("u1"), "failed queries are not recorded")
		})
	}
}

func TestAsk_ProductListError(t *testing.T) {
	gen := &fakeGen{classify: "YES"}
	r, _ := newResponder(gen, &fakeLister{err: apperr.Internal(errors.New("db down"))})
	_, err := r.Ask(context.Background(), "u1", "How many items?")
	assert.True(t, apperr.Is(err, apperr.KindInternal))
}

func TestAsk_KeepsLastFiveExchanges(t *testing.T) {
	gen := &fakeGen{classify: "YES"}
	r, mem := newResponder(gen, &fakeLister{})
	for i := 1; i <= 6; i++ {
		gen.answer = fmt.Sprintf("answer %d", i)
		_, err := r.Ask(context.Background(), "u1", fmt.Sprintf("question %d", i))
		require.NoError(t, err)
	}
	h := mem.History("u1")
	require.Len(t, h, 5)
	assert.Equal(t, "question 2", h[0].User)
	assert.Equal(t, "question 6", h[4].User)
}

func TestAsk_ConcurrentSameUserKeepsEveryExchange(t *testing.T) {
	gen := &fakeGen{classify: "YES", answer: "ok"}
	r, mem := newResponder(gen, &fakeLister{})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := r.Ask(context.Background(), "u1", fmt.Sprintf("q%d", i))
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()
	assert.Len(t, mem.History("u1"), 4)
}

func TestInventorySummary(t *testing.T) {
	assert.Equal(t, emptyInventory, InventorySummary(nil))

	p := widget()
	p.Description = "Blue"
	p.IsActive = false
	q := models.Product{Name: "Mystery", Quantity: 0, UnitPrice: 0, IsActive: true}
	got := InventorySummary([]models.Product{p, q})
	assert.Equal(t,
		"- Widget: Blue (Category: electronics, Quantity: 10, Price: $2.5, Active: No)\n"+
			"- Mystery: No description (Category: Uncategorized, Quantity: 0, Price: $0, Active: Yes)",
		got)
}

func TestClassificationPrompt_UsesLastTwoExchanges(t *testing.T) {
	h := []memory.Exchange{{User: "one", Bot: "1"}, {User: "two", Bot: "2"}, {User: "three", Bot: "3"}}
	p := classificationPrompt("next?", h)
	assert.NotContains(t, p, "User: one")
	assert.Contains(t, p, "User: two\nBot: 2\nUser: three\nBot: 3")
	assert.Contains(t, p, `Current Query: "next?"`)

	assert.NotContains(t, classificationPrompt("hi", nil), "Recent conversation context")
}
