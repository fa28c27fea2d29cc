package calculator

import (
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/ledgerwise/internal/models"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func item(owner, category, amount string, date models.Date) models.Expense {
	return models.Expense{Owner: owner, Category: category, Amount: d(amount), Date: date}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

var jan10 = models.NewDate(2024, time.January, 10)

func TestTotal(t *testing.T) {
	expenses := []models.Expense{
		item("a", "Food", "10.10", jan10),
		item("b", "Food", "0.20", jan10),
		item("c", "Travel", "5", jan10),
	}

	assertDecimal(t, "15.30", Total(slices.Values(expenses)))

	reversed := slices.Clone(expenses)
	slices.Reverse(reversed)
	assert.True(t, Total(slices.Values(expenses)).Equal(Total(slices.Values(reversed))))

	assertDecimal(t, "0", Total(slices.Values([]models.Expense(nil))))
}

func TestCategoryBreakdown(t *testing.T) {
	tests := []struct {
		name     string
		expenses []models.Expense
		validate func(t *testing.T, shares []CategoryShare)
	}{
		{
			name: "sorted by sum with percentages",
			expenses: []models.Expense{
				item("a", "Food", "30", jan10),
				item("a", "Travel", "60", jan10),
				item("b", "Food", "10", jan10),
			},
			validate: func(t *testing.T, shares []CategoryShare) {
				require.Len(t, shares, 2)
				assert.Equal(t, "Travel", shares[0].Category)
				assertDecimal(t, "60", shares[0].Total)
				assertDecimal(t, "60", shares[0].Percentage)
				assert.Equal(t, "Food", shares[1].Category)
				assertDecimal(t, "40", shares[1].Total)
			},
		},
		{
			name: "percentages sum to 100 within rounding",
			expenses: []models.Expense{
				item("a", "A", "1", jan10),
				item("a", "B", "1", jan10),
				item("a", "C", "1", jan10),
			},
			validate: func(t *testing.T, shares []CategoryShare) {
				sum := decimal.Zero
				for _, s := range shares {
					assertDecimal(t, "33.33", s.Percentage)
					sum = sum.Add(s.Percentage)
				}
				assert.True(t, sum.Sub(hundred).Abs().LessThanOrEqual(d("0.01")), "sum %s", sum)
				assert.Equal(t, []string{"A", "B", "C"}, []string{shares[0].Category, shares[1].Category, shares[2].Category})
			},
		},
		{
			name:     "empty view",
			expenses: nil,
			validate: func(t *testing.T, shares []CategoryShare) {
				assert.Empty(t, shares)
			},
		},
		{
			name: "zero total does not divide",
			expenses: []models.Expense{
				item("a", "Food", "0", jan10),
			},
			validate: func(t *testing.T, shares []CategoryShare) {
				require.Len(t, shares, 1)
				assertDecimal(t, "0", shares[0].Percentage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, CategoryBreakdown(slices.Values(tt.expenses)))
		})
	}
}

func TestMemberBreakdown(t *testing.T) {
	shares := MemberBreakdown(slices.Values([]models.Expense{
		item("bob", "Food", "10", jan10),
		item("alice", "Food", "20", jan10),
		item("bob", "Travel", "5", jan10),
		item("alice", "Food", "15", jan10),
	}))

	require.Len(t, shares, 2)
	alice, bob := shares[0], shares[1]

	assert.Equal(t, "alice", alice.Member)
	assertDecimal(t, "35", alice.Spent)
	assert.Equal(t, 2, alice.Count)
	assertDecimal(t, "17.5", alice.Mean)
	assertDecimal(t, "70", alice.Percentage)

	assert.Equal(t, "bob", bob.Member)
	assertDecimal(t, "15", bob.Spent)
	assertDecimal(t, "7.5", bob.Mean)
	assertDecimal(t, "30", bob.Percentage)

	t.Run("zero total gives zero percentage", func(t *testing.T) {
		shares := MemberBreakdown(slices.Values([]models.Expense{item("a", "Food", "0", jan10)}))
		require.Len(t, shares, 1)
		assertDecimal(t, "0", shares[0].Percentage)
		assertDecimal(t, "0", shares[0].Mean)
	})
}

func TestTimeWindowTotals(t *testing.T) {
	expenses := []models.Expense{
		item("a", "Food", "10", models.NewDate(2024, time.January, 1)),
		item("a", "Food", "20", models.NewDate(2024, time.January, 31)),
		item("a", "Food", "5", models.NewDate(2023, time.December, 1)),
		item("a", "Food", "7", models.NewDate(2023, time.December, 31)),
		item("a", "Food", "100", models.NewDate(2023, time.November, 30)),
		item("a", "Food", "100", models.NewDate(2024, time.February, 1)),
		item("a", "Food", "100", models.NewDate(2022, time.December, 15)),
	}

	got := TimeWindowTotals(slices.Values(expenses), models.NewDate(2024, time.January, 15))
	assertDecimal(t, "30", got.ThisMonth)
	assertDecimal(t, "12", got.LastMonth)

	t.Run("mid-year", func(t *testing.T) {
		got := TimeWindowTotals(slices.Values(expenses), models.NewDate(2024, time.February, 29))
		assertDecimal(t, "100", got.ThisMonth)
		assertDecimal(t, "30", got.LastMonth)
	})
}

func TestTopCategory(t *testing.T) {
	tests := []struct {
		name     string
		expenses []models.Expense
		want     string
	}{
		{name: "empty", want: NoCategory},
		{
			name: "largest sum wins over most frequent",
			expenses: []models.Expense{
				item("a", "Food", "1", jan10),
				item("a", "Food", "1", jan10),
				item("a", "Travel", "5", jan10),
			},
			want: "Travel",
		},
		{
			name: "tie goes to smallest name",
			expenses: []models.Expense{
				item("a", "Shopping", "5", jan10),
				item("a", "Food", "5", jan10),
			},
			want: "Food",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TopCategory(slices.Values(tt.expenses)))
		})
	}
}

func TestComputeStats(t *testing.T) {
	ref := models.NewDate(2024, time.January, 15)

	t.Run("empty view", func(t *testing.T) {
		stats := ComputeStats(slices.Values([]models.Expense(nil)), ref)
		assert.Equal(t, 0, stats.Count)
		assert.Equal(t, NoCategory, stats.TopCategory)
		assertDecimal(t, "0", stats.Total)
		assertDecimal(t, "0", stats.Mean)
		assertDecimal(t, "0", stats.ThisMonth)
		assertDecimal(t, "0", stats.LastMonth)
	})

	t.Run("populated view", func(t *testing.T) {
		stats := ComputeStats(slices.Values([]models.Expense{
			item("a", "Food", "10", models.NewDate(2024, time.January, 2)),
			item("a", "Travel", "25", models.NewDate(2023, time.December, 20)),
			item("a", "Food", "5", models.NewDate(2023, time.June, 1)),
		}), ref)

		assert.Equal(t, 3, stats.Count)
		assertDecimal(t, "40", stats.Total)
		assertDecimal(t, "13.33", stats.Mean)
		assert.Equal(t, "Travel", stats.TopCategory)
		assertDecimal(t, "10", stats.ThisMonth)
		assertDecimal(t, "25", stats.LastMonth)
	})
}
