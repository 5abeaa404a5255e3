package protocol

import "github.com/spectrum-go/spectrumcore/buffer"

// InsecureChannelKey names a channel by index and gates writes to it with
// a plaintext password, grounded on spectrum_protocol/src/insecure.rs's
// ChannelKey(usize, String).
type InsecureChannelKey struct {
	Idx      int
	Password string
}

// InsecureWriteToken is either empty (a cover write) or carries a message
// for one channel under the key that authorized it.
type InsecureWriteToken struct {
	present bool
	Data    buffer.ByteBuf
	Key     InsecureChannelKey
}

// NewInsecureWriteToken builds a write token carrying data for key's
// channel.
func NewInsecureWriteToken(data buffer.ByteBuf, key InsecureChannelKey) InsecureWriteToken {
	return InsecureWriteToken{present: true, Data: data, Key: key}
}

// EmptyInsecureWriteToken is the cover write: no channel is perturbed.
func EmptyInsecureWriteToken() InsecureWriteToken {
	return InsecureWriteToken{}
}

// InsecureProtocol is the plaintext reference protocol used to exercise
// the Protocol contract and test harness without any real VDPF behind it:
// a write token openly carries its message and channel index, and the
// only "proof" is a password match. It provides no privacy or
// unlinkability and must never be used for anything but tests.
type InsecureProtocol struct {
	parties    int
	channels   int
	messageLen int
}

// NewInsecureProtocol builds an InsecureProtocol with the given party
// count, channel count, and per-channel message length.
func NewInsecureProtocol(parties, channels, messageLen int) *InsecureProtocol {
	return &InsecureProtocol{parties: parties, channels: channels, messageLen: messageLen}
}

func (p *InsecureProtocol) NumParties() int  { return p.parties }
func (p *InsecureProtocol) NumChannels() int { return p.channels }
func (p *InsecureProtocol) MessageLen() int  { return p.messageLen }

// Broadcast places the (message, key) pair in the last party's slot and
// an empty token everywhere else.
func (p *InsecureProtocol) Broadcast(message buffer.ByteBuf, idx int, key InsecureChannelKey) []InsecureWriteToken {
	tokens := make([]InsecureWriteToken, p.parties)
	for i := 0; i < p.parties-1; i++ {
		tokens[i] = EmptyInsecureWriteToken()
	}
	tokens[p.parties-1] = NewInsecureWriteToken(message, InsecureChannelKey{Idx: idx, Password: key.Password})
	return tokens
}

func (p *InsecureProtocol) Cover() []InsecureWriteToken {
	tokens := make([]InsecureWriteToken, p.parties)
	for i := range tokens {
		tokens[i] = EmptyInsecureWriteToken()
	}
	return tokens
}

// GenAudit checks the write token's password against the channel's
// expected key and replicates the single boolean result once per party.
func (p *InsecureProtocol) GenAudit(keys []InsecureChannelKey, token InsecureWriteToken) []bool {
	ok := true
	if token.present {
		ok = token.Key.Idx >= 0 && token.Key.Idx < len(keys) && token.Key == keys[token.Key.Idx]
	}
	out := make([]bool, p.parties)
	for i := range out {
		out[i] = ok
	}
	return out
}

// CheckAudit requires every party's share to be true.
func (p *InsecureProtocol) CheckAudit(tokens []bool) bool {
	if len(tokens) != p.parties {
		return false
	}
	for _, t := range tokens {
		if !t {
			return false
		}
	}
	return true
}

func (p *InsecureProtocol) NewAccumulator() []buffer.ByteBuf {
	out := make([]buffer.ByteBuf, p.channels)
	for i := range out {
		out[i] = buffer.NewByteBuf(p.messageLen)
	}
	return out
}

// ToAccumulator places the token's message at its channel index and
// leaves every other channel at its identity value.
func (p *InsecureProtocol) ToAccumulator(token InsecureWriteToken) []buffer.ByteBuf {
	out := p.NewAccumulator()
	if token.present {
		out[token.Key.Idx] = token.Data
	}
	return out
}

var _ Protocol[InsecureChannelKey, InsecureWriteToken, bool, buffer.ByteBuf] = (*InsecureProtocol)(nil)
