// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package csp provides synchronous and buffered message-passing channels
// in the style of Communicating Sequential Processes, together with a
// selective-wait construct ([Alternative]) and a sticky poison protocol
// for orderly network shutdown.
//
// # Architecture
//
//   - Kernel: one monitor-based rendezvous kernel serves all four channel
//     multiplicities. [NewOne2One], [NewOne2Any], [NewAny2One] and
//     [NewAny2Any] differ only in which ends are shared; shared ends are
//     serialized by a FIFO [Mutex] built on [code.hybscloud.com/lfq].
//   - Buffering: buffered channels interpose a [Store] inside the monitor.
//     [NewBuffer], [NewInfiniteBuffer], [NewOverwriteOldestBuffer] and
//     [NewOverwriteNewestBuffer] supply the standard policies.
//   - Selective wait: [Alternative] waits on the first ready [Guard] with
//     arbitrary, priority or fair selection. [Timeout] and [Skip] guards
//     compose with channel read ends.
//   - Poison: Poison on either end injects a sticky terminal condition
//     that unblocks every waiter; operations past an end's immunity
//     return a [*PoisonError].
//   - Non-blocking: TryRead and TryWrite return
//     [code.hybscloud.com/iox.ErrWouldBlock] instead of parking.
//
// # API Topologies
//
//   - Ends: [ChannelInput] (Read, StartRead/EndRead, TryRead, Poison),
//     [ChannelOutput] (Write, TryWrite, Poison). [AltingChannelInput] adds
//     guard capability; [SharedChannelInput] and [SharedChannelOutput]
//     mark multi-process ends and never carry guards.
//   - Extended rendezvous: StartRead takes the value while the writer stays
//     synchronized; EndRead completes the exchange.
//   - Processes: [Process], [ProcessFunc] and [NewParallel] run units
//     concurrently and join them, propagating terminal errors.
//   - Protocols: [Send], [Recv] and [PoisonOp] are algebraic effects on
//     [code.hybscloud.com/kont]; [Eval] interprets a protocol against a
//     [Session], and [RunPair] wires two protocols back to back.
//
// # Example
//
//	ch := csp.NewOne2One[int]()
//	par := csp.NewParallel(
//		csp.ProcessFunc(func() error { return ch.Out().Write(42) }),
//		csp.ProcessFunc(func() error {
//			v, err := ch.In().Read()
//			if err != nil {
//				return err
//			}
//			fmt.Println(v)
//			return nil
//		}),
//	)
//	_ = par.Run()
package csp
