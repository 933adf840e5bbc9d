package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicInput_AcceptsStringOrObject(t *testing.T) {
	var req CreateTaskRequest
	body := `{"title":"t","topics":["first",{"title":"second"}, "third"]}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	require.Len(t, req.Topics, 3)
	assert.Equal(t, "first", req.Topics[0].Title)
	assert.Equal(t, "second", req.Topics[1].Title)
	assert.Equal(t, "third", req.Topics[2].Title)
}

func TestTopicInput_RejectsOtherShapes(t *testing.T) {
	var in TopicInput
	assert.Error(t, json.Unmarshal([]byte(`42`), &in))
}

func TestUpdateSupervisorGroupRequest_DistinguishesEmptyFromMissing(t *testing.T) {
	var missing, empty UpdateSupervisorGroupRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"x"}`), &missing))
	require.NoError(t, json.Unmarshal([]byte(`{"memberIds":[]}`), &empty))

	assert.Nil(t, missing.MemberIDs)
	require.NotNil(t, empty.MemberIDs)
	assert.Empty(t, *empty.MemberIDs)
}
