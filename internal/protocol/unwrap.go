package protocol

import (
	"encoding/json"

	"go.uber.org/zap"
)

func TryUnwrapDealStartEvent(wrapper EventWrapper) *DealStartEvent {
	if wrapper.Type != EVT_DEAL_START {
		return nil
	}

	var dealStartEvent DealStartEvent

	err := json.Unmarshal(wrapper.Raw, &dealStartEvent)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap DealStartEvent",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &dealStartEvent
}

func TryUnwrapDealCardEvent(wrapper EventWrapper) *DealCardEvent {
	if wrapper.Type != EVT_DEAL_CARD {
		return nil
	}

	var dealCardEvent DealCardEvent

	err := json.Unmarshal(wrapper.Raw, &dealCardEvent)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap DealCardEvent",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &dealCardEvent
}

func TryUnwrapDealDoneEvent(wrapper EventWrapper) *DealDoneEvent {
	if wrapper.Type != EVT_DEAL_DONE {
		return nil
	}

	var dealDoneEvent DealDoneEvent

	err := json.Unmarshal(wrapper.Raw, &dealDoneEvent)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap DealDoneEvent",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &dealDoneEvent
}

func TryUnwrapDealEvent(wrapper EventWrapper) *DealEvent {
	if wrapper.Type != EVT_DEAL {
		return nil
	}

	var dealEvent DealEvent

	err := json.Unmarshal(wrapper.Raw, &dealEvent)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap DealEvent",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &dealEvent
}

func TryUnwrapThinkingEvent(wrapper EventWrapper) *ThinkingEvent {
	if wrapper.Type != EVT_THINKING {
		return nil
	}

	var thinkingEvent ThinkingEvent

	err := json.Unmarshal(wrapper.Raw, &thinkingEvent)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap ThinkingEvent",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &thinkingEvent
}

func TryUnwrapCountdownEvent(wrapper EventWrapper) *CountdownEvent {
	if wrapper.Type != EVT_COUNTDOWN {
		return nil
	}

	var countdownEvent CountdownEvent

	err := json.Unmarshal(wrapper.Raw, &countdownEvent)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap CountdownEvent",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &countdownEvent
}

func TryUnwrapBidEvent(wrapper EventWrapper) *BidEvent {
	if wrapper.Type != EVT_BID {
		return nil
	}

	var bidEvent BidEvent

	err := json.Unmarshal(wrapper.Raw, &bidEvent)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap BidEvent",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &bidEvent
}

func TryUnwrapLandlordEvent(wrapper EventWrapper) *LandlordEvent {
	if wrapper.Type != EVT_LANDLORD {
		return nil
	}

	var landlordEvent LandlordEvent

	err := json.Unmarshal(wrapper.Raw, &landlordEvent)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap LandlordEvent",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &landlordEvent
}

func TryUnwrapPlayEvent(wrapper EventWrapper) *PlayEvent {
	if wrapper.Type != EVT_PLAY {
		return nil
	}

	var playEvent PlayEvent

	err := json.Unmarshal(wrapper.Raw, &playEvent)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap PlayEvent",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &playEvent
}

func TryUnwrapPassEvent(wrapper EventWrapper) *PassEvent {
	if wrapper.Type != EVT_PASS {
		return nil
	}

	var passEvent PassEvent

	err := json.Unmarshal(wrapper.Raw, &passEvent)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap PassEvent",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &passEvent
}

func TryUnwrapResultEvent(wrapper EventWrapper) *ResultEvent {
	if wrapper.Type != EVT_RESULT {
		return nil
	}

	var resultEvent ResultEvent

	err := json.Unmarshal(wrapper.Raw, &resultEvent)
	if err != nil {
		zap.L().Error(
			"Failed to unwrap ResultEvent",
			zap.Error(err),
			zap.Any("wrapper", wrapper),
		)
		return nil
	}

	return &resultEvent
}
