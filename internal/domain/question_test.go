package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalQuestion_AllVariants(t *testing.T) {
	tests := []struct {
		name string
		data string
		want QuestionType
	}{
		{
			name: "multiple choice",
			data: `{"type":"multiple-choice","category":"Identification","question":"Q?","answers":["a","b"],"correct":1}`,
			want: TypeMultipleChoice,
		},
		{
			name: "image multiple choice",
			data: `{"type":"image-multiple-choice","category":"Identification","question":"Q?","image":"/img.jpg","answers":["a","b"],"correct":0}`,
			want: TypeImageMultipleChoice,
		},
		{
			name: "true false",
			data: `{"type":"true-false","category":"Basics","question":"Q?","correct":true}`,
			want: TypeTrueFalse,
		},
		{
			name: "text input",
			data: `{"type":"text-input","category":"Terminology","question":"Q?","correct":"MOA","acceptableAnswers":["MOA","moa"]}`,
			want: TypeTextInput,
		},
		{
			name: "slider",
			data: `{"type":"slider","category":"Ballistics","question":"Q?","min":1500,"max":3500,"unit":"fps","correct":2700,"tolerance":200}`,
			want: TypeSlider,
		},
		{
			name: "drag drop",
			data: `{"type":"drag-drop","category":"Applications","question":"Q?","items":[{"id":"9mm","text":"9mm"}],"targets":[{"id":"handgun","text":"Handgun"}],"correctMatches":{"9mm":"handgun"}}`,
			want: TypeDragDrop,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := UnmarshalQuestion([]byte(tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.want, q.Base().Type)
		})
	}
}

func TestUnmarshalQuestion_VariantFields(t *testing.T) {
	q, err := UnmarshalQuestion([]byte(`{"type":"slider","question":"Q?","min":1500,"max":3500,"unit":"fps","correct":2700,"tolerance":200,"presetOnly":true,"presetValues":[1500,2700]}`))
	require.NoError(t, err)

	slider, ok := q.(*SliderQuestion)
	require.True(t, ok)
	assert.Equal(t, 2700.0, slider.Correct)
	assert.Equal(t, 200.0, slider.Tolerance)
	assert.True(t, slider.PresetOnly)
	assert.Equal(t, []float64{1500, 2700}, slider.PresetValues)
}

func TestUnmarshalQuestion_UnknownType(t *testing.T) {
	_, err := UnmarshalQuestion([]byte(`{"type":"essay","question":"Q?"}`))
	assert.Error(t, err)
}

func TestMarshalQuestion_RoundTrip(t *testing.T) {
	original := &DragDropQuestion{
		BaseQuestion: BaseQuestion{
			ID:       "medium-1",
			Type:     TypeDragDrop,
			Category: "Applications",
			Question: "Match them.",
		},
		Items:          []DragDropItem{{ID: "9mm", Text: "9mm Luger"}},
		Targets:        []DragDropItem{{ID: "handgun", Text: "Handgun"}},
		CorrectMatches: map[string]string{"9mm": "handgun"},
	}

	data, err := MarshalQuestion(original)
	require.NoError(t, err)

	decoded, err := UnmarshalQuestion(data)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestQuestionClone_DoesNotAliasBase(t *testing.T) {
	original := &TrueFalseQuestion{
		BaseQuestion: BaseQuestion{Type: TypeTrueFalse, Question: "Q?"},
		Correct:      true,
	}

	clone := original.Clone()
	clone.Base().ID = "easy-0"
	clone.Base().Difficulty = DifficultyEasy

	assert.Empty(t, original.ID)
	assert.Empty(t, original.Difficulty)
}

func TestPoolDocument_Unmarshal(t *testing.T) {
	data := `{
		"easy": [{"type":"true-false","question":"Q1?","correct":true}],
		"medium": [{"type":"text-input","question":"Q2?","correct":"a","acceptableAnswers":["a"]}],
		"hard": [],
		"settings": {"questionsPerDifficulty":{"easy":5,"medium":6,"hard":4}}
	}`

	var doc PoolDocument
	require.NoError(t, json.Unmarshal([]byte(data), &doc))

	assert.Len(t, doc.Easy, 1)
	assert.Len(t, doc.Medium, 1)
	assert.Empty(t, doc.Hard)
	assert.Equal(t, 5, doc.Quota(DifficultyEasy))
	assert.Equal(t, 6, doc.Quota(DifficultyMedium))
	assert.Equal(t, 4, doc.Quota(DifficultyHard))
	assert.Equal(t, 15, doc.TargetLength())
}

func TestPoolDocument_UnmarshalRejectsBrokenQuestion(t *testing.T) {
	data := `{"easy":[{"type":"nope","question":"Q?"}],"settings":{"questionsPerDifficulty":{"easy":1}}}`

	var doc PoolDocument
	assert.Error(t, json.Unmarshal([]byte(data), &doc))
}

func TestValidEmail(t *testing.T) {
	valid := []string{
		"detective@example.com",
		"first.last@sub.example.co",
		"a+b@example.io",
	}
	invalid := []string{
		"",
		"plainaddress",
		"missing@dot",
		"two words@example.com",
		"trailing@example.com ",
		"@example.com",
		"user@",
	}

	for _, email := range valid {
		assert.True(t, ValidEmail(email), email)
	}
	for _, email := range invalid {
		assert.False(t, ValidEmail(email), email)
	}
}
